package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/devconnect/devconnect/internal/auth"
	"github.com/devconnect/devconnect/internal/config"
	"github.com/devconnect/devconnect/internal/repository"
	"github.com/devconnect/devconnect/internal/server"
)

func main() {
	cfg := config.Load()

	if cfg.SigningKey == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := repository.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := repository.CreateSchema(context.Background(), db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	repo := repository.NewManager(db)
	repo.MustValidate()

	provider := repository.NewUserProvider(repo.Users())
	auther := auth.NewAuthenticator(provider, cfg)

	srv := server.New(cfg, repo, auther)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		if err := srv.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := srv.Listen(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
