package server

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/models"
	"github.com/devconnect/devconnect/internal/repository"
)

// UpsertProfilePayload is the create-or-update profile body. Skills arrive
// as a comma separated string, the way the client form submits them.
type UpsertProfilePayload struct {
	Company    string            `json:"company"`
	Website    string            `json:"website"`
	Location   string            `json:"location"`
	Status     string            `json:"status"`
	Skills     string            `json:"skills"`
	Bio        string            `json:"bio"`
	GithubUser string            `json:"githubusername"`
	Social     map[string]string `json:"social"`
}

// Validate will run validation rules
func (r UpsertProfilePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required.Error("Status is required")),
		validation.Field(&r.Skills, validation.Required.Error("Skills is required")),
	)
}

// SplitSkills normalizes the comma separated skills field
func (r UpsertProfilePayload) SplitSkills() []string {
	parts := strings.Split(r.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// MyProfile returns the caller's profile
func (s *Server) MyProfile(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	profile, err := s.repo.Profiles().GetByUserID(c.Context(), userID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profile)
}

// UpsertProfile creates the caller's profile or updates the fields present
// in the body.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	payload := new(UpsertProfilePayload)
	if err := c.BodyParser(payload); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Error parsing body"}})
	}

	if err := payload.Validate(); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, FormatValidationErrors(err))
	}

	profile := &models.Profile{
		UserID:     userID,
		Company:    payload.Company,
		Website:    payload.Website,
		Location:   payload.Location,
		Status:     payload.Status,
		Skills:     payload.SplitSkills(),
		Bio:        payload.Bio,
		GithubUser: payload.GithubUser,
		Social:     payload.Social,
	}

	profile, err = s.repo.Profiles().Upsert(c.Context(), profile)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profile)
}

// ListProfiles returns every profile, public route
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.repo.Profiles().List(c.Context())
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profiles)
}

// ProfileByUser returns one user's profile, public route. A malformed id
// reads the same as a user with no profile.
func (s *Server) ProfileByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return sendMsg(c, fiber.StatusBadRequest, "There is no profile for this user")
	}

	profile, err := s.repo.Profiles().GetByUserID(c.Context(), userID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profile)
}

// DeleteAccount removes the caller's user record, profile, and posts
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	deleteAccount := repository.NewDeleteAccountHandler(s.repo)
	if err := deleteAccount.Execute(c.Context(), repository.DeleteAccountMessage{UserID: userID}); err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(msgResponse{Msg: "User deleted"})
}

// ExperiencePayload is one work history entry
type ExperiencePayload struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// Validate will run validation rules
func (r ExperiencePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("Title is required")),
		validation.Field(&r.Company, validation.Required.Error("Company is required")),
		validation.Field(&r.From, validation.Required.Error("From date is required")),
	)
}

// AddExperience appends a work entry to the caller's profile
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	payload := new(ExperiencePayload)
	if err := c.BodyParser(payload); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Error parsing body"}})
	}

	if err := payload.Validate(); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, FormatValidationErrors(err))
	}

	profile, err := s.repo.Profiles().AddExperience(c.Context(), userID, &models.Experience{
		Title:       payload.Title,
		Company:     payload.Company,
		Location:    payload.Location,
		From:        payload.From,
		To:          payload.To,
		Current:     payload.Current,
		Description: payload.Description,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profile)
}

// DeleteExperience removes a work entry from the caller's profile
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	expID, err := uuid.Parse(c.Params("exp_id"))
	if err != nil {
		return sendMsg(c, fiber.StatusBadRequest, "Invalid experience id")
	}

	profile, err := s.repo.Profiles().DeleteExperience(c.Context(), userID, expID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profile)
}

// EducationPayload is one schooling entry
type EducationPayload struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         *time.Time `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// Validate will run validation rules
func (r EducationPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.School, validation.Required.Error("School is required")),
		validation.Field(&r.Degree, validation.Required.Error("Degree is required")),
		validation.Field(&r.FieldOfStudy, validation.Required.Error("Field of study is required")),
		validation.Field(&r.From, validation.Required.Error("From date is required")),
	)
}

// AddEducation appends a schooling entry to the caller's profile
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	payload := new(EducationPayload)
	if err := c.BodyParser(payload); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Error parsing body"}})
	}

	if err := payload.Validate(); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, FormatValidationErrors(err))
	}

	profile, err := s.repo.Profiles().AddEducation(c.Context(), userID, &models.Education{
		School:       payload.School,
		Degree:       payload.Degree,
		FieldOfStudy: payload.FieldOfStudy,
		From:         payload.From,
		To:           payload.To,
		Current:      payload.Current,
		Description:  payload.Description,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profile)
}

// DeleteEducation removes a schooling entry from the caller's profile
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	eduID, err := uuid.Parse(c.Params("edu_id"))
	if err != nil {
		return sendMsg(c, fiber.StatusBadRequest, "Invalid education id")
	}

	profile, err := s.repo.Profiles().DeleteEducation(c.Context(), userID, eduID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(profile)
}

// GithubRepos proxies the user's five most recent public repos, public route
func (s *Server) GithubRepos(c *fiber.Ctx) error {
	repos, err := s.gh.LatestRepos(c.Context(), c.Params("username"))
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(repos)
}
