package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/client/state"
	"github.com/devconnect/devconnect/internal/github"
	"github.com/devconnect/devconnect/internal/models"
)

// ProfileForm is the create-or-update profile body, skills as the comma
// separated string the form collects.
type ProfileForm struct {
	Company    string            `json:"company,omitempty"`
	Website    string            `json:"website,omitempty"`
	Location   string            `json:"location,omitempty"`
	Status     string            `json:"status"`
	Skills     string            `json:"skills"`
	Bio        string            `json:"bio,omitempty"`
	GithubUser string            `json:"githubusername,omitempty"`
	Social     map[string]string `json:"social,omitempty"`
}

// ExperienceForm is one work history entry
type ExperienceForm struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// EducationForm is one schooling entry
type EducationForm struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// GetCurrentProfile loads the caller's own profile
func (a *Actions) GetCurrentProfile(ctx context.Context) error {
	return a.loadProfile(ctx, "/api/profile/me")
}

// GetProfiles loads the developer directory
func (a *Actions) GetProfiles(ctx context.Context) error {
	a.store.Dispatch(state.ProfileCleared{})

	resp, err := a.api.get(ctx, "/api/profile/")
	if err != nil {
		return err
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.ProfileFailed{Err: requestError(resp)})
		return nil
	}

	var profiles []*models.Profile
	if err := resp.decode(&profiles); err != nil {
		return err
	}

	a.store.Dispatch(state.ProfilesLoaded{Profiles: profiles})
	return nil
}

// GetProfileByUser loads another user's profile
func (a *Actions) GetProfileByUser(ctx context.Context, userID uuid.UUID) error {
	return a.loadProfile(ctx, "/api/profile/user/"+userID.String())
}

// GetGithubRepos loads a profile's recent public repositories
func (a *Actions) GetGithubRepos(ctx context.Context, username string) error {
	resp, err := a.api.get(ctx, "/api/profile/github/"+username)
	if err != nil {
		return err
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.ProfileFailed{Err: requestError(resp)})
		return nil
	}

	var repos []github.Repo
	if err := resp.decode(&repos); err != nil {
		return err
	}

	a.store.Dispatch(state.ReposLoaded{Repos: repos})
	return nil
}

// CreateProfile creates or updates the caller's profile
func (a *Actions) CreateProfile(ctx context.Context, form ProfileForm) error {
	resp, err := a.api.post(ctx, "/api/profile/", form)
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.ProfileFailed{Err: requestError(resp)})
		return nil
	}

	profile := new(models.Profile)
	if err := resp.decode(profile); err != nil {
		return err
	}

	a.store.Dispatch(state.ProfileUpdated{Profile: profile})
	a.SetAlert("Profile Updated", state.AlertSuccess)
	return nil
}

// AddExperience appends a work entry to the caller's profile
func (a *Actions) AddExperience(ctx context.Context, form ExperienceForm) error {
	return a.updateProfile(ctx, http.MethodPut, "/api/profile/experience", form, "Experience Added")
}

// DeleteExperience removes a work entry
func (a *Actions) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	return a.updateProfile(ctx, http.MethodDelete, "/api/profile/experience/"+id.String(), nil, "Experience Removed")
}

// AddEducation appends a schooling entry to the caller's profile
func (a *Actions) AddEducation(ctx context.Context, form EducationForm) error {
	return a.updateProfile(ctx, http.MethodPut, "/api/profile/education", form, "Education Added")
}

// DeleteEducation removes a schooling entry
func (a *Actions) DeleteEducation(ctx context.Context, id uuid.UUID) error {
	return a.updateProfile(ctx, http.MethodDelete, "/api/profile/education/"+id.String(), nil, "Education Removed")
}

// DeleteAccount destroys the account and resets the whole state
func (a *Actions) DeleteAccount(ctx context.Context) error {
	resp, err := a.api.delete(ctx, "/api/profile/")
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.ProfileFailed{Err: requestError(resp)})
		return nil
	}

	a.api.SetToken("")
	a.store.Dispatch(state.AccountDeleted{})
	a.SetAlert("Your account has been permanently deleted", state.AlertDanger)
	return nil
}

func (a *Actions) loadProfile(ctx context.Context, path string) error {
	resp, err := a.api.get(ctx, path)
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.store.Dispatch(state.ProfileFailed{Err: requestError(resp)})
		return nil
	}

	profile := new(models.Profile)
	if err := resp.decode(profile); err != nil {
		return err
	}

	a.store.Dispatch(state.ProfileLoaded{Profile: profile})
	return nil
}

func (a *Actions) updateProfile(ctx context.Context, method, path string, payload any, successMsg string) error {
	resp, err := a.api.do(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if resp.Status == http.StatusUnauthorized {
		a.store.Dispatch(state.AuthFailed{})
		return nil
	}

	if resp.Status != http.StatusOK {
		a.alertServerErrors(resp)
		a.store.Dispatch(state.ProfileFailed{Err: requestError(resp)})
		return nil
	}

	profile := new(models.Profile)
	if err := resp.decode(profile); err != nil {
		return err
	}

	a.store.Dispatch(state.ProfileUpdated{Profile: profile})
	a.SetAlert(successMsg, state.AlertSuccess)
	return nil
}
