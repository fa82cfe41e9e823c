package state

import (
	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/github"
	"github.com/devconnect/devconnect/internal/models"
)

// Message is the sealed set of state transitions. Only types in this
// package can be dispatched, a reducer switch over them is exhaustive.
type Message interface {
	isMessage()
}

// AlertSet shows a notification
type AlertSet struct {
	Alert Alert
}

// AlertRemoved discards a notification by id
type AlertRemoved struct {
	ID uuid.UUID
}

// RegisterSucceeded carries the token minted at registration
type RegisterSucceeded struct {
	Token string
}

// RegisterFailed clears the session after a rejected registration
type RegisterFailed struct{}

// LoginSucceeded carries the token minted at login
type LoginSucceeded struct {
	Token string
}

// LoginFailed clears the session after rejected credentials
type LoginFailed struct{}

// UserLoaded stores the authenticated user's record
type UserLoaded struct {
	User *models.User
}

// AuthFailed clears the session after a 401
type AuthFailed struct{}

// LoggedOut clears the session on request
type LoggedOut struct{}

// AccountDeleted clears everything tied to the destroyed account
type AccountDeleted struct{}

// ProfileLoaded stores the single profile being viewed or edited
type ProfileLoaded struct {
	Profile *models.Profile
}

// ProfileUpdated stores the profile returned by a write
type ProfileUpdated struct {
	Profile *models.Profile
}

// ProfilesLoaded stores the developer directory
type ProfilesLoaded struct {
	Profiles []*models.Profile
}

// ReposLoaded stores a profile's recent GitHub repositories
type ReposLoaded struct {
	Repos []github.Repo
}

// ProfileFailed records a failed profile call
type ProfileFailed struct {
	Err RequestError
}

// ProfileCleared drops profile data, on logout or account switch
type ProfileCleared struct{}

// PostsLoaded stores the feed
type PostsLoaded struct {
	Posts []*models.Post
}

// PostLoaded stores the single post view
type PostLoaded struct {
	Post *models.Post
}

// PostAdded prepends a new post to the feed
type PostAdded struct {
	Post *models.Post
}

// PostDeleted drops a post from the feed
type PostDeleted struct {
	ID uuid.UUID
}

// LikesUpdated replaces one post's like set everywhere it appears
type LikesUpdated struct {
	PostID uuid.UUID
	Likes  []*models.Like
}

// CommentsUpdated replaces the viewed post's comment thread
type CommentsUpdated struct {
	PostID   uuid.UUID
	Comments []*models.Comment
}

// PostFailed records a failed feed call
type PostFailed struct {
	Err RequestError
}

func (AlertSet) isMessage()          {}
func (AlertRemoved) isMessage()      {}
func (RegisterSucceeded) isMessage() {}
func (RegisterFailed) isMessage()    {}
func (LoginSucceeded) isMessage()    {}
func (LoginFailed) isMessage()       {}
func (UserLoaded) isMessage()        {}
func (AuthFailed) isMessage()        {}
func (LoggedOut) isMessage()         {}
func (AccountDeleted) isMessage()    {}
func (ProfileLoaded) isMessage()     {}
func (ProfileUpdated) isMessage()    {}
func (ProfilesLoaded) isMessage()    {}
func (ReposLoaded) isMessage()       {}
func (ProfileFailed) isMessage()     {}
func (ProfileCleared) isMessage()    {}
func (PostsLoaded) isMessage()       {}
func (PostLoaded) isMessage()        {}
func (PostAdded) isMessage()         {}
func (PostDeleted) isMessage()       {}
func (LikesUpdated) isMessage()      {}
func (CommentsUpdated) isMessage()   {}
func (PostFailed) isMessage()        {}
