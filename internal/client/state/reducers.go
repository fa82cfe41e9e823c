package state

import (
	"github.com/devconnect/devconnect/internal/models"
)

// Reduce applies one message to the state and returns the next state. It
// never mutates its input, unknown slices pass through untouched.
func Reduce(s State, msg Message) State {
	s.Alerts = reduceAlerts(s.Alerts, msg)
	s.Auth = reduceAuth(s.Auth, msg)
	s.Profile = reduceProfile(s.Profile, msg)
	s.Posts = reducePosts(s.Posts, msg)
	return s
}

func reduceAlerts(alerts []Alert, msg Message) []Alert {
	switch m := msg.(type) {
	case AlertSet:
		next := make([]Alert, 0, len(alerts)+1)
		next = append(next, alerts...)
		return append(next, m.Alert)
	case AlertRemoved:
		next := make([]Alert, 0, len(alerts))
		for _, alert := range alerts {
			if alert.ID != m.ID {
				next = append(next, alert)
			}
		}
		return next
	default:
		return alerts
	}
}

func reduceAuth(auth AuthSlice, msg Message) AuthSlice {
	switch m := msg.(type) {
	case RegisterSucceeded:
		return AuthSlice{Token: m.Token, IsAuthenticated: true}
	case LoginSucceeded:
		return AuthSlice{Token: m.Token, IsAuthenticated: true}
	case UserLoaded:
		auth.IsAuthenticated = true
		auth.Loading = false
		auth.User = m.User
		return auth
	case RegisterFailed, LoginFailed, AuthFailed, LoggedOut, AccountDeleted:
		return AuthSlice{}
	default:
		return auth
	}
}

func reduceProfile(profile ProfileSlice, msg Message) ProfileSlice {
	switch m := msg.(type) {
	case ProfileLoaded:
		profile.Profile = m.Profile
		profile.Loading = false
		profile.Error = nil
		return profile
	case ProfileUpdated:
		profile.Profile = m.Profile
		profile.Loading = false
		profile.Error = nil
		return profile
	case ProfilesLoaded:
		profile.Profiles = m.Profiles
		profile.Loading = false
		profile.Error = nil
		return profile
	case ReposLoaded:
		profile.Repos = m.Repos
		profile.Loading = false
		return profile
	case ProfileFailed:
		profile.Error = &m.Err
		profile.Loading = false
		profile.Profile = nil
		return profile
	case ProfileCleared, LoggedOut, AccountDeleted:
		return ProfileSlice{}
	default:
		return profile
	}
}

func reducePosts(posts PostsSlice, msg Message) PostsSlice {
	switch m := msg.(type) {
	case PostsLoaded:
		posts.Posts = m.Posts
		posts.Loading = false
		posts.Error = nil
		return posts
	case PostLoaded:
		posts.Post = m.Post
		posts.Loading = false
		posts.Error = nil
		return posts
	case PostAdded:
		next := make([]*models.Post, 0, len(posts.Posts)+1)
		next = append(next, m.Post)
		next = append(next, posts.Posts...)
		posts.Posts = next
		posts.Loading = false
		return posts
	case PostDeleted:
		next := make([]*models.Post, 0, len(posts.Posts))
		for _, post := range posts.Posts {
			if post.ID != m.ID {
				next = append(next, post)
			}
		}
		posts.Posts = next
		posts.Loading = false
		return posts
	case LikesUpdated:
		next := make([]*models.Post, len(posts.Posts))
		for i, post := range posts.Posts {
			if post.ID == m.PostID {
				updated := *post
				updated.Likes = m.Likes
				next[i] = &updated
			} else {
				next[i] = post
			}
		}
		posts.Posts = next
		if posts.Post != nil && posts.Post.ID == m.PostID {
			updated := *posts.Post
			updated.Likes = m.Likes
			posts.Post = &updated
		}
		posts.Loading = false
		return posts
	case CommentsUpdated:
		if posts.Post != nil && posts.Post.ID == m.PostID {
			updated := *posts.Post
			updated.Comments = m.Comments
			posts.Post = &updated
		}
		posts.Loading = false
		return posts
	case PostFailed:
		posts.Error = &m.Err
		posts.Loading = false
		return posts
	case LoggedOut, AccountDeleted:
		return PostsSlice{}
	default:
		return posts
	}
}
