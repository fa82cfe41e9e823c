package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/models"
)

// PostPayload is the body for posts and comments alike
type PostPayload struct {
	Text string `json:"text"`
}

// Validate will run validation rules
func (r PostPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("Text is required")),
	)
}

// CreatePost stores a post stamped with the author's name and avatar
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	payload := new(PostPayload)
	if err := c.BodyParser(payload); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Error parsing body"}})
	}

	if err := payload.Validate(); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, FormatValidationErrors(err))
	}

	user, err := s.repo.Users().GetByID(c.Context(), userID.String())
	if err != nil {
		return s.handleError(c, err)
	}

	post, err := s.repo.Posts().Create(c.Context(), &models.Post{
		UserID: userID,
		Text:   payload.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(post)
}

// ListPosts returns the feed, newest first
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.repo.Posts().List(c.Context())
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(posts)
}

// GetPost returns one post with its likes and comments
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.postID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusNotFound, "Post not found")
	}

	post, err := s.repo.Posts().GetByID(c.Context(), postID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(post)
}

// DeletePost removes the caller's own post
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	postID, err := s.postID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusNotFound, "Post not found")
	}

	if err := s.repo.Posts().Delete(c.Context(), postID, userID); err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(msgResponse{Msg: "Post removed"})
}

// LikePost adds the caller to the like set and returns it. Already liked
// is not an error.
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	postID, err := s.postID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusNotFound, "Post not found")
	}

	likes, err := s.repo.Posts().Like(c.Context(), postID, userID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(likes)
}

// UnlikePost removes the caller from the like set and returns it
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	postID, err := s.postID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusNotFound, "Post not found")
	}

	likes, err := s.repo.Posts().Unlike(c.Context(), postID, userID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(likes)
}

// AddComment appends to the post's thread and returns it newest first
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	postID, err := s.postID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusNotFound, "Post not found")
	}

	payload := new(PostPayload)
	if err := c.BodyParser(payload); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, []FieldError{{Msg: "Error parsing body"}})
	}

	if err := payload.Validate(); err != nil {
		return sendErrors(c, fiber.StatusBadRequest, FormatValidationErrors(err))
	}

	user, err := s.repo.Users().GetByID(c.Context(), userID.String())
	if err != nil {
		return s.handleError(c, err)
	}

	comments, err := s.repo.Posts().AddComment(c.Context(), postID, &models.Comment{
		UserID: userID,
		Text:   payload.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(comments)
}

// DeleteComment removes the caller's own comment and returns the thread
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusUnauthorized, "Token is not valid")
	}

	postID, err := s.postID(c)
	if err != nil {
		return sendMsg(c, fiber.StatusNotFound, "Post not found")
	}

	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return sendMsg(c, fiber.StatusNotFound, "Comment does not exist")
	}

	comments, err := s.repo.Posts().DeleteComment(c.Context(), postID, commentID, userID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(comments)
}

// postID parses the :id route param. Malformed ids read the same as posts
// that do not exist.
func (s *Server) postID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
