package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/goliatone/go-print"

	"github.com/devconnect/devconnect/internal/client"
	"github.com/devconnect/devconnect/internal/client/state"
)

// A small walkthrough against a running server: register or log in, load
// the feed and the directory, and dump the resulting state.
func main() {
	var (
		addr     = flag.String("addr", "http://localhost:5000", "server base URL")
		name     = flag.String("name", "", "name, registers a new account when set")
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		message  = flag.String("post", "", "text to post after logging in")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required")
	}

	api := client.NewAPI(*addr)
	store := state.NewStore()
	actions := client.NewActions(api, store)

	unsubscribe := store.Subscribe(func(s state.State) {
		for _, alert := range s.Alerts {
			fmt.Printf("[%s] %s\n", alert.Type, alert.Msg)
		}
	})
	defer unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	if *name != "" {
		err = actions.Register(ctx, *name, *email, *password)
	} else {
		err = actions.Login(ctx, *email, *password)
	}
	if err != nil {
		log.Fatalf("authentication failed: %v", err)
	}

	if !store.State().Auth.IsAuthenticated {
		log.Fatal("server rejected the credentials")
	}

	if *message != "" {
		if err := actions.AddPost(ctx, *message); err != nil {
			log.Fatalf("add post: %v", err)
		}
	}

	if err := actions.GetPosts(ctx); err != nil {
		log.Fatalf("load posts: %v", err)
	}

	if err := actions.GetProfiles(ctx); err != nil {
		log.Fatalf("load profiles: %v", err)
	}

	final := store.State()
	fmt.Println("======= STATE =======")
	fmt.Println(print.MaybePrettyJSON(final.Auth.User))
	fmt.Printf("posts: %d, profiles: %d\n", len(final.Posts.Posts), len(final.Profile.Profiles))
	fmt.Println(print.MaybePrettyJSON(final.Posts.Posts))
}
