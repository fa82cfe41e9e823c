package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is user-authored text with a denormalized author snapshot so feeds
// render without joining users, plus a like set and an ordered comment list.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:pst"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user,omitempty"`
	Text          string     `bun:"text,notnull" json:"text,omitempty"`
	Name          string     `bun:"name" json:"name,omitempty"`
	Avatar        string     `bun:"avatar" json:"avatar,omitempty"`
	Likes         []*Like    `bun:"rel:has-many,join:id=post_id" json:"likes"`
	Comments      []*Comment `bun:"rel:has-many,join:id=post_id" json:"comments"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Like records one user id in a post's like set. The (post,user) pair is
// unique so membership is boolean, not counted.
type Like struct {
	bun.BaseModel `bun:"table:post_likes,alias:lke"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PostID        uuid.UUID `bun:"post_id,notnull,type:uuid,unique:post_likes_post_user" json:"-"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid,unique:post_likes_post_user" json:"user"`
}

// Comment is an appended reply with its own author snapshot
type Comment struct {
	bun.BaseModel `bun:"table:post_comments,alias:cmt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PostID        uuid.UUID  `bun:"post_id,notnull,type:uuid" json:"-"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user,omitempty"`
	Text          string     `bun:"text,notnull" json:"text,omitempty"`
	Name          string     `bun:"name" json:"name,omitempty"`
	Avatar        string     `bun:"avatar" json:"avatar,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
