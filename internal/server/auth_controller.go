package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/devconnect/devconnect/internal/auth"
)

// LoginPayload is the login body
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("Please include a valid email"), is.Email.Error("Please include a valid email")),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

// Login verifies credentials and returns a signed token. Unknown emails and
// wrong passwords produce the same response.
func (s *Server) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Error parsing body"}})
	}

	if err := payload.Validate(); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, FormatValidationErrors(err))
	}

	token, err := s.auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		if err == auth.ErrMismatchedHashAndPassword || err == auth.ErrIdentityNotFound {
			return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Invalid Credentials"}})
		}
		return s.handleError(c, err)
	}

	return c.JSON(tokenResponse{Token: token})
}

// CurrentUser returns the authenticated user's record, password hash
// excluded by the model's serialization.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	id, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	user, err := s.repo.Users().GetByID(c.Context(), id.String())
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(user)
}
