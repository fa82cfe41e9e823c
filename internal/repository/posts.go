package repository

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/devconnect/devconnect/internal/models"
)

// ErrPostNotFound means the post id does not resolve to a stored post
var ErrPostNotFound = errors.New("post not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("post_not_found")

// ErrCommentNotFound means the comment id does not exist on the post
var ErrCommentNotFound = errors.New("comment not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("comment_not_found")

// ErrNotPostOwner means a caller tried to delete someone else's content
var ErrNotPostOwner = errors.New("user not authorized", errors.CategoryAuthz).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("post_not_owner")

// Posts manages the feed: posts, their like sets, and their comment threads.
type Posts interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Like(ctx context.Context, postID, userID uuid.UUID) ([]*models.Like, error)
	Unlike(ctx context.Context, postID, userID uuid.UUID) ([]*models.Like, error)
	AddComment(ctx context.Context, postID uuid.UUID, comment *models.Comment) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, userID uuid.UUID) ([]*models.Comment, error)
	DeleteByUserID(ctx context.Context, tx bun.IDB, userID uuid.UUID) error
}

// PostsRepository implements Posts using Bun.
type PostsRepository struct {
	db *bun.DB
}

// NewPostsRepository creates a new repository.
func NewPostsRepository(db *bun.DB) *PostsRepository {
	return &PostsRepository{db: db}
}

// Create stores a post with the author snapshot already filled in.
func (r *PostsRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().
		Model(post).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create post")
	}

	return r.GetByID(ctx, post.ID)
}

// GetByID loads one post with its like set and comment thread, comments
// newest first.
func (r *PostsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post := new(models.Post)
	err := r.db.NewSelect().
		Model(post).
		Relation("Likes").
		Relation("Comments", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at DESC")
		}).
		Where("pst.id = ?", id).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPostNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve post")
	}
	return post, nil
}

// List returns the feed, newest post first.
func (r *PostsRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.NewSelect().
		Model(&posts).
		Relation("Likes").
		Relation("Comments", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at DESC")
		}).
		Order("pst.created_at DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*models.Post{}, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list posts")
	}
	return posts, nil
}

// Delete removes a post and its dependents. Only the author may do it.
func (r *PostsRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	post, err := r.fetch(ctx, id)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotPostOwner
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Like)(nil)).
			Where("post_id = ?", id).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete post likes")
		}
		if _, err := tx.NewDelete().
			Model((*models.Comment)(nil)).
			Where("post_id = ?", id).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete post comments")
		}
		if _, err := tx.NewDelete().
			Model((*models.Post)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete post")
		}
		return nil
	})
}

// Like adds the caller to the post's like set. Liking a post twice is the
// same as liking it once.
func (r *PostsRepository) Like(ctx context.Context, postID, userID uuid.UUID) ([]*models.Like, error) {
	if _, err := r.fetch(ctx, postID); err != nil {
		return nil, err
	}

	like := &models.Like{
		ID:     uuid.New(),
		PostID: postID,
		UserID: userID,
	}
	if _, err := r.db.NewInsert().
		Model(like).
		On("CONFLICT (post_id, user_id) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to like post")
	}

	return r.likes(ctx, postID)
}

// Unlike removes the caller from the like set. Absent membership is a no-op.
func (r *PostsRepository) Unlike(ctx context.Context, postID, userID uuid.UUID) ([]*models.Like, error) {
	if _, err := r.fetch(ctx, postID); err != nil {
		return nil, err
	}

	if _, err := r.db.NewDelete().
		Model((*models.Like)(nil)).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to unlike post")
	}

	return r.likes(ctx, postID)
}

// AddComment appends to the post's thread and returns it newest first.
func (r *PostsRepository) AddComment(ctx context.Context, postID uuid.UUID, comment *models.Comment) ([]*models.Comment, error) {
	if _, err := r.fetch(ctx, postID); err != nil {
		return nil, err
	}

	comment.ID = uuid.New()
	comment.PostID = postID
	if _, err := r.db.NewInsert().
		Model(comment).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to add comment")
	}

	return r.comments(ctx, postID)
}

// DeleteComment removes one comment. Only the comment's author may do it.
func (r *PostsRepository) DeleteComment(ctx context.Context, postID, commentID, userID uuid.UUID) ([]*models.Comment, error) {
	if _, err := r.fetch(ctx, postID); err != nil {
		return nil, err
	}

	comment := new(models.Comment)
	err := r.db.NewSelect().
		Model(comment).
		Where("id = ? AND post_id = ?", commentID, postID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCommentNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve comment")
	}

	if comment.UserID != userID {
		return nil, ErrNotPostOwner
	}

	if _, err := r.db.NewDelete().
		Model((*models.Comment)(nil)).
		Where("id = ?", commentID).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to delete comment")
	}

	return r.comments(ctx, postID)
}

// DeleteByUserID removes every post the user authored, plus their likes
// and comments anywhere in the feed. Runs inside the caller's transaction.
func (r *PostsRepository) DeleteByUserID(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}

	var postIDs []uuid.UUID
	err := tx.NewSelect().
		Model((*models.Post)(nil)).
		Column("id").
		Where("user_id = ?", userID).
		Scan(ctx, &postIDs)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, errors.CategoryInternal, "failed to list posts for deletion")
	}

	if len(postIDs) > 0 {
		if _, err := tx.NewDelete().
			Model((*models.Like)(nil)).
			Where("post_id IN (?)", bun.In(postIDs)).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete post likes")
		}
		if _, err := tx.NewDelete().
			Model((*models.Comment)(nil)).
			Where("post_id IN (?)", bun.In(postIDs)).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete post comments")
		}
		if _, err := tx.NewDelete().
			Model((*models.Post)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete posts")
		}
	}

	if _, err := tx.NewDelete().
		Model((*models.Like)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete likes by user")
	}

	if _, err := tx.NewDelete().
		Model((*models.Comment)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete comments by user")
	}

	return nil
}

func (r *PostsRepository) fetch(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post := new(models.Post)
	err := r.db.NewSelect().
		Model(post).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPostNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve post")
	}
	return post, nil
}

func (r *PostsRepository) likes(ctx context.Context, postID uuid.UUID) ([]*models.Like, error) {
	var likes []*models.Like
	err := r.db.NewSelect().
		Model(&likes).
		Where("post_id = ?", postID).
		Scan(ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list likes")
	}
	if likes == nil {
		likes = []*models.Like{}
	}
	return likes, nil
}

func (r *PostsRepository) comments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.NewSelect().
		Model(&comments).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list comments")
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

var _ Posts = &PostsRepository{}
