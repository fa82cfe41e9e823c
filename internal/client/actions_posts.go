package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/client/state"
	"github.com/devconnect/devconnect/internal/models"
)

type postRequest struct {
	Text string `json:"text"`
}

// GetPosts loads the feed
func (a *Actions) GetPosts(ctx context.Context) error {
	resp, err := a.api.get(ctx, "/api/posts/")
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.PostFailed{Err: requestError(resp)})
		return nil
	}

	var posts []*models.Post
	if err := resp.decode(&posts); err != nil {
		return err
	}

	a.store.Dispatch(state.PostsLoaded{Posts: posts})
	return nil
}

// GetPost loads one post with its likes and comments
func (a *Actions) GetPost(ctx context.Context, id uuid.UUID) error {
	resp, err := a.api.get(ctx, "/api/posts/"+id.String())
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.PostFailed{Err: requestError(resp)})
		return nil
	}

	post := new(models.Post)
	if err := resp.decode(post); err != nil {
		return err
	}

	a.store.Dispatch(state.PostLoaded{Post: post})
	return nil
}

// AddPost creates a post and prepends it to the feed
func (a *Actions) AddPost(ctx context.Context, text string) error {
	resp, err := a.api.post(ctx, "/api/posts/", postRequest{Text: text})
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.PostFailed{Err: requestError(resp)})
		return nil
	}

	post := new(models.Post)
	if err := resp.decode(post); err != nil {
		return err
	}

	a.store.Dispatch(state.PostAdded{Post: post})
	a.SetAlert("Post Created", state.AlertSuccess)
	return nil
}

// DeletePost removes the caller's own post from the feed
func (a *Actions) DeletePost(ctx context.Context, id uuid.UUID) error {
	resp, err := a.api.delete(ctx, "/api/posts/"+id.String())
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.PostFailed{Err: requestError(resp)})
		return nil
	}

	a.store.Dispatch(state.PostDeleted{ID: id})
	a.SetAlert("Post Removed", state.AlertSuccess)
	return nil
}

// AddLike puts the caller in a post's like set
func (a *Actions) AddLike(ctx context.Context, id uuid.UUID) error {
	return a.updateLikes(ctx, "/api/posts/like/"+id.String(), id)
}

// RemoveLike takes the caller out of a post's like set
func (a *Actions) RemoveLike(ctx context.Context, id uuid.UUID) error {
	return a.updateLikes(ctx, "/api/posts/unlike/"+id.String(), id)
}

// AddComment appends to a post's thread
func (a *Actions) AddComment(ctx context.Context, postID uuid.UUID, text string) error {
	resp, err := a.api.post(ctx, "/api/posts/comment/"+postID.String(), postRequest{Text: text})
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.PostFailed{Err: requestError(resp)})
		return nil
	}

	var comments []*models.Comment
	if err := resp.decode(&comments); err != nil {
		return err
	}

	a.store.Dispatch(state.CommentsUpdated{PostID: postID, Comments: comments})
	a.SetAlert("Comment Added", state.AlertSuccess)
	return nil
}

// DeleteComment removes the caller's own comment
func (a *Actions) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	resp, err := a.api.delete(ctx, "/api/posts/comment/"+postID.String()+"/"+commentID.String())
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.PostFailed{Err: requestError(resp)})
		return nil
	}

	var comments []*models.Comment
	if err := resp.decode(&comments); err != nil {
		return err
	}

	a.store.Dispatch(state.CommentsUpdated{PostID: postID, Comments: comments})
	a.SetAlert("Comment Removed", state.AlertSuccess)
	return nil
}

func (a *Actions) updateLikes(ctx context.Context, path string, postID uuid.UUID) error {
	resp, err := a.api.put(ctx, path, nil)
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.PostFailed{Err: requestError(resp)})
		return nil
	}

	var likes []*models.Like
	if err := resp.decode(&likes); err != nil {
		return err
	}

	a.store.Dispatch(state.LikesUpdated{PostID: postID, Likes: likes})
	return nil
}
