// Command-line tool to clean the database by dropping every table owned by the service.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"standards-board-backend/internal/database"
)

func main() {

	// Warning message
	fmt.Println("⚠️ WARNING: This command will DROP the users, applications and status history tables.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	// Ask for confirmation
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	db, err := database.NewDBInstance(&database.DBConfig{Constr: os.Getenv("DB_CONNECTION_STR")})
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.DropAll(); err != nil {
		log.Fatalf("failed to drop tables: %v", err)
	}

	fmt.Println("✅ All tables dropped successfully.")
}
