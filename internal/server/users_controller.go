package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/devconnect/devconnect/internal/repository"
)

// RegisterUserPayload is the registration body
type RegisterUserPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Name is required")),
		validation.Field(&r.Email, validation.Required.Error("Please include a valid email"), is.Email.Error("Please include a valid email")),
		validation.Field(&r.Password, validation.Required.Error("Please enter a password with 6 or more characters"), validation.Length(6, 100).Error("Please enter a password with 6 or more characters")),
	)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RegisterUser creates an account and returns a signed token so the new
// user is logged in immediately.
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	payload := new(RegisterUserPayload)

	if err := c.BodyParser(payload); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Error parsing body"}})
	}

	if err := payload.Validate(); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, FormatValidationErrors(err))
	}

	registerUser := repository.NewRegisterUserHandler(s.repo)
	user, err := registerUser.Execute(c.Context(), repository.RegisterUserMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	token, err := s.auther.TokenService().Generate(repository.IdentityFromUser(user))
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(tokenResponse{Token: token})
}
