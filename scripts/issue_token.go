//go:build ignore

// issue_token mints a development token pair for a user.
//
//	go run scripts/issue_token.go -user <uuid> -role seller
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/config"
	"github.com/horsh321/teem-server/internal/model"

	"github.com/google/uuid"
)

func main() {
	userFlag := flag.String("user", "", "user ID (random when empty)")
	roleFlag := flag.String("role", string(model.RoleUser), "role: user, seller or admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid user ID: %v\n", err)
			os.Exit(1)
		}
	}

	pair, err := auth.NewIssuer(cfg.Auth).Issue(userID, model.Role(*roleFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user:          %s\n", userID)
	fmt.Printf("role:          %s\n", *roleFlag)
	fmt.Printf("access token:  %s\n", pair.AccessToken)
	fmt.Printf("refresh token: %s\n", pair.RefreshToken)
}
