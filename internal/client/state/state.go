package state

import (
	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/github"
	"github.com/devconnect/devconnect/internal/models"
)

// AlertType classifies an alert for display
type AlertType string

const (
	AlertSuccess AlertType = "success"
	AlertDanger  AlertType = "danger"
)

// Alert is one transient notification
type Alert struct {
	ID   uuid.UUID
	Msg  string
	Type AlertType
}

// RequestError captures a failed call for display
type RequestError struct {
	Msg    string
	Status int
}

// AuthSlice tracks the session: the bearer token and the loaded user
type AuthSlice struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *models.User
}

// ProfileSlice tracks the profile screens
type ProfileSlice struct {
	Profile  *models.Profile
	Profiles []*models.Profile
	Repos    []github.Repo
	Loading  bool
	Error    *RequestError
}

// PostsSlice tracks the feed and the single post view
type PostsSlice struct {
	Posts   []*models.Post
	Post    *models.Post
	Loading bool
	Error   *RequestError
}

// State is the whole application state. It is a value: reducers take one
// and return a new one, nothing mutates in place.
type State struct {
	Alerts  []Alert
	Auth    AuthSlice
	Profile ProfileSlice
	Posts   PostsSlice
}

// NewState returns the initial state, every slice loading
func NewState() State {
	return State{
		Alerts:  []Alert{},
		Auth:    AuthSlice{Loading: true},
		Profile: ProfileSlice{Loading: true},
		Posts:   PostsSlice{Loading: true},
	}
}
