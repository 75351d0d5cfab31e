package main

import (
	"flag"
	"log"

	"go-inventory-client/internal/config"
	"go-inventory-client/internal/repository"
	"go-inventory-client/pkg/database"
)

func main() {
	email := flag.String("email", "admin@example.com", "account to reset")
	newPassword := flag.String("password", "admin123", "new password")
	flag.Parse()

	// 1. Load Env
	if !config.LoadEnvFile() {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.LoadServer()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	users := repository.NewUserRepo(db)

	// 3. Find user
	user, err := users.FindByEmail(*email)
	if err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *email, err)
	}

	// 4. Hash new password
	if err := user.SetPassword(*newPassword); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := users.UpdatePassword(user.ID, user.Password); err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Password for %s has been reset", *email)
}
