package client

import (
	"context"
	"net/http"

	"github.com/devconnect/devconnect/internal/client/state"
	"github.com/devconnect/devconnect/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

// Register creates an account. On success the token is stored and the new
// user loaded, on rejection each server error becomes an alert.
func (a *Actions) Register(ctx context.Context, name, email, password string) error {
	resp, err := a.api.post(ctx, "/api/users", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		a.store.Dispatch(state.RegisterFailed{})
		return err
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.RegisterFailed{})
		return nil
	}

	var payload tokenPayload
	if err := resp.decode(&payload); err != nil {
		a.store.Dispatch(state.RegisterFailed{})
		return err
	}

	a.api.SetToken(payload.Token)
	a.store.Dispatch(state.RegisterSucceeded{Token: payload.Token})

	return a.LoadUser(ctx)
}

// Login exchanges credentials for a token and loads the user
func (a *Actions) Login(ctx context.Context, email, password string) error {
	resp, err := a.api.post(ctx, "/api/auth", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		a.store.Dispatch(state.LoginFailed{})
		return err
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.LoginFailed{})
		return nil
	}

	var payload tokenPayload
	if err := resp.decode(&payload); err != nil {
		a.store.Dispatch(state.LoginFailed{})
		return err
	}

	a.api.SetToken(payload.Token)
	a.store.Dispatch(state.LoginSucceeded{Token: payload.Token})

	return a.LoadUser(ctx)
}

// LoadUser fetches the authenticated user's record. A 401 resets the
// session.
func (a *Actions) LoadUser(ctx context.Context) error {
	resp, err := a.api.get(ctx, "/api/auth")
	if err != nil {
		a.store.Dispatch(state.AuthFailed{})
		return err
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	user := new(models.User)
	if err := resp.decode(user); err != nil {
		a.store.Dispatch(state.AuthFailed{})
		return err
	}

	a.store.Dispatch(state.UserLoaded{User: user})
	return nil
}

// Logout clears the token and every user-scoped slice
func (a *Actions) Logout() {
	a.api.SetToken("")
	a.store.Dispatch(state.LoggedOut{})
}
