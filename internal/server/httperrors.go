package server

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/devconnect/devconnect/internal/github"
	"github.com/devconnect/devconnect/internal/repository"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

type errorsResponse struct {
	Errors []FieldError `json:"errors"`
}

func sendMsg(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(msgResponse{Msg: msg})
}

func sendErrors(c *fiber.Ctx, status int, errs []FieldError) error {
	return c.Status(status).JSON(errorsResponse{Errors: errs})
}

func sendServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
}

// handleError maps repository and domain failures to wire responses. Anything
// unrecognized is a plain 500.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if goerrors.Is(err, repository.ErrUserExists) {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "User already exists"}})
	}

	if goerrors.Is(err, repository.ErrPostNotFound) {
		return sendMsg(c, fiber.StatusNotFound, "Post not found")
	}

	if goerrors.Is(err, repository.ErrCommentNotFound) {
		return sendMsg(c, fiber.StatusNotFound, "Comment does not exist")
	}

	if goerrors.Is(err, repository.ErrNotPostOwner) {
		return sendMsg(c, fiber.StatusUnauthorized, "User not authorized")
	}

	if goerrors.Is(err, repository.ErrProfileNotFound) {
		return sendMsg(c, fiber.StatusBadRequest, "There is no profile for this user")
	}

	if goerrors.Is(err, github.ErrNoProfile) {
		return sendMsg(c, fiber.StatusNotFound, "No Github profile found")
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		switch richErr.Category {
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: richErr.Message}})
		case goerrors.CategoryAuth:
			return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
		case goerrors.CategoryAuthz:
			return sendMsg(c, fiber.StatusUnauthorized, "User not authorized")
		case goerrors.CategoryNotFound:
			return sendMsg(c, fiber.StatusNotFound, richErr.Message)
		}
	}

	s.logger.Error("request failed: %v", err)
	return sendServerError(c)
}
