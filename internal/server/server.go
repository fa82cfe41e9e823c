package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/auth"
	"github.com/devconnect/devconnect/internal/config"
	"github.com/devconnect/devconnect/internal/github"
	"github.com/devconnect/devconnect/internal/repository"
)

// Server wires the HTTP surface: public registration and login, and the
// token gated profile and feed routes.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	repo   repository.Manager
	auther *auth.Auther
	gh     *github.Client
	logger auth.Logger
}

type Option func(*Server) *Server

func WithLogger(l auth.Logger) Option {
	return func(s *Server) *Server {
		s.logger = l
		return s
	}
}

func WithGithubClient(gh *github.Client) Option {
	return func(s *Server) *Server {
		s.gh = gh
		return s
	}
}

func New(cfg *config.Config, repo repository.Manager, auther *auth.Auther, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		repo:   repo,
		auther: auther,
	}

	for _, opt := range opts {
		s = opt(s)
	}

	if s.logger == nil {
		s.logger = auth.DefaultLogger()
	}

	if s.gh == nil {
		s.gh = github.NewClient(cfg.GithubToken)
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "devconnect",
		ErrorHandler: s.fiberErrorHandler,
	})

	s.registerRoutes()

	return s
}

// App exposes the fiber app, used by tests to drive requests in process.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	protected := auth.Protected(auth.MiddlewareConfig{
		ContextKey:     s.cfg.GetContextKey(),
		TokenLookup:    s.cfg.GetTokenLookup(),
		AuthScheme:     s.cfg.GetAuthScheme(),
		TokenValidator: s.auther.TokenService(),
	})

	api := s.app.Group("/api")

	api.Post("/users", s.RegisterUser)

	api.Post("/auth", s.Login)
	api.Get("/auth", protected, s.CurrentUser)

	profile := api.Group("/profile")
	profile.Get("/me", protected, s.MyProfile)
	profile.Post("/", protected, s.UpsertProfile)
	profile.Get("/", s.ListProfiles)
	profile.Get("/user/:user_id", s.ProfileByUser)
	profile.Delete("/", protected, s.DeleteAccount)
	profile.Put("/experience", protected, s.AddExperience)
	profile.Delete("/experience/:exp_id", protected, s.DeleteExperience)
	profile.Put("/education", protected, s.AddEducation)
	profile.Delete("/education/:edu_id", protected, s.DeleteEducation)
	profile.Get("/github/:username", s.GithubRepos)

	posts := api.Group("/posts", protected)
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)
	posts.Put("/like/:id", s.LikePost)
	posts.Put("/unlike/:id", s.UnlikePost)
	posts.Post("/comment/:id", s.AddComment)
	posts.Delete("/comment/:id/:comment_id", s.DeleteComment)
}

func (s *Server) fiberErrorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(msgResponse{Msg: fe.Message})
	}

	s.logger.Error("unhandled error: %v", err)
	return sendServerError(c)
}

// currentUserID reads the validated token claims the middleware stored on
// the request and parses the subject into a user id.
func (s *Server) currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := auth.ClaimsFromContext(c, s.cfg.GetContextKey())
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
