// Command promote-admin grants the admin role to an existing user, found by email.
// The user must have signed in with Google at least once.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	// Load env
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"

	"standards-board-backend/internal/database"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Println("Usage: promote-admin -email user@example.com")
		os.Exit(2)
	}

	db, err := database.NewDBInstance(&database.DBConfig{Constr: os.Getenv("DB_CONNECTION_STR")})
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	user, err := db.PromoteAdmin(context.Background(), strings.TrimSpace(*email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Printf("No user with email %s. They must sign in once before being promoted.\n", *email)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Failed to promote user: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("User promoted to admin")
	fmt.Println("======================================")
	fmt.Printf("ID:    %s\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Println("======================================")
}
