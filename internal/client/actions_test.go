package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect/internal/client"
	"github.com/devconnect/devconnect/internal/client/state"
)

func newActions(t *testing.T, handler http.Handler) (*client.Actions, *state.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := state.NewStore()
	actions := client.NewActions(client.NewAPI(srv.URL), store)
	return actions, store
}

func TestRegisterAction(t *testing.T) {
	t.Run("stores the token and loads the user", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "jane@example.com", payload["email"])

			fmt.Fprint(w, `{"token":"a-token"}`)
		})
		mux.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer a-token", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"name":"Jane Doe","email":"jane@example.com"}`)
		})

		actions, store := newActions(t, mux)

		err := actions.Register(context.Background(), "Jane Doe", "jane@example.com", "secret-password")
		require.NoError(t, err)

		s := store.State()
		assert.Equal(t, "a-token", s.Auth.Token)
		assert.True(t, s.Auth.IsAuthenticated)
		require.NotNil(t, s.Auth.User)
		assert.Equal(t, "Jane Doe", s.Auth.User.Name)
	})

	t.Run("fans validation errors out into alerts", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"errors":[{"param":"email","msg":"Please include a valid email"},{"param":"password","msg":"Please enter a password with 6 or more characters"}]}`)
		})

		actions, store := newActions(t, mux)
		actions.WithAlertTimeout(time.Hour)

		err := actions.Register(context.Background(), "Jane Doe", "bad", "123")
		require.NoError(t, err)

		s := store.State()
		assert.False(t, s.Auth.IsAuthenticated)
		require.Len(t, s.Alerts, 2)
		assert.Equal(t, "Please include a valid email", s.Alerts[0].Msg)
		assert.Equal(t, state.AlertDanger, s.Alerts[0].Type)
	})
}

func TestAlertExpiry(t *testing.T) {
	actions, store := newActions(t, http.NewServeMux())
	actions.WithAlertTimeout(20 * time.Millisecond)

	actions.SetAlert("transient", state.AlertSuccess)
	require.Len(t, store.State().Alerts, 1)

	assert.Eventually(t, func() bool {
		return len(store.State().Alerts) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestLoadUserUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"msg":"Token is not valid"}`)
	})

	actions, store := newActions(t, mux)

	err := actions.LoadUser(context.Background())
	require.NoError(t, err)

	s := store.State()
	assert.False(t, s.Auth.IsAuthenticated)
	assert.False(t, s.Auth.Loading)
}

func TestLikeActions(t *testing.T) {
	postID := uuid.New()
	likerID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			fmt.Fprintf(w, `[{"id":"%s","text":"hello","likes":[],"comments":[]}]`, postID)
		case r.URL.Path == "/api/posts/like/"+postID.String():
			fmt.Fprintf(w, `[{"id":"%s","user":"%s"}]`, uuid.New(), likerID)
		case r.URL.Path == "/api/posts/unlike/"+postID.String():
			fmt.Fprint(w, `[]`)
		default:
			http.NotFound(w, r)
		}
	})

	actions, store := newActions(t, mux)
	ctx := context.Background()

	require.NoError(t, actions.GetPosts(ctx))
	require.Len(t, store.State().Posts.Posts, 1)

	require.NoError(t, actions.AddLike(ctx, postID))
	assert.Len(t, store.State().Posts.Posts[0].Likes, 1)

	require.NoError(t, actions.RemoveLike(ctx, postID))
	assert.Empty(t, store.State().Posts.Posts[0].Likes)
}

func TestDeleteAccountAction(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		fmt.Fprint(w, `{"msg":"User deleted"}`)
	})

	actions, store := newActions(t, mux)
	actions.WithAlertTimeout(time.Hour)

	store.Dispatch(state.LoginSucceeded{Token: "a-token"})

	err := actions.DeleteAccount(context.Background())
	require.NoError(t, err)

	s := store.State()
	assert.False(t, s.Auth.IsAuthenticated)
	assert.Empty(t, s.Auth.Token)
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, "Your account has been permanently deleted", s.Alerts[0].Msg)
}
