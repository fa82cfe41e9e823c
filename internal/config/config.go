package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment. It
// satisfies the auth configuration contract consumed by the token service
// and middleware.
type Config struct {
	Addr            string
	DSN             string
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration int
	TokenLookup     string
	AuthScheme      string
	Issuer          string
	GithubToken     string
}

// Load reads .env if present, then the environment, and fills defaults
// for anything unset.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	return &Config{
		Addr:            getenv("ADDR", ":5000"),
		DSN:             getenv("DATABASE_DSN", "file:devconnect.db?cache=shared"),
		SigningKey:      getenv("JWT_SECRET", ""),
		SigningMethod:   getenv("JWT_SIGNING_METHOD", "HS256"),
		ContextKey:      getenv("JWT_CONTEXT_KEY", "user"),
		TokenExpiration: getenvInt("JWT_TOKEN_EXPIRATION", 72),
		TokenLookup:     getenv("JWT_TOKEN_LOOKUP", "header:Authorization"),
		AuthScheme:      getenv("JWT_AUTH_SCHEME", "Bearer"),
		Issuer:          getenv("JWT_ISSUER", "devconnect"),
		GithubToken:     getenv("GITHUB_TOKEN", ""),
	}
}

func (c *Config) GetSigningKey() string    { return c.SigningKey }
func (c *Config) GetSigningMethod() string { return c.SigningMethod }
func (c *Config) GetContextKey() string    { return c.ContextKey }
func (c *Config) GetTokenExpiration() int  { return c.TokenExpiration }
func (c *Config) GetTokenLookup() string   { return c.TokenLookup }
func (c *Config) GetAuthScheme() string    { return c.AuthScheme }
func (c *Config) GetIssuer() string        { return c.Issuer }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid value for %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}
