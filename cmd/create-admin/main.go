// Command create-admin creates an admin account with a random password.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"actualize-backend/internal/database"
	"actualize-backend/internal/utilities"
)

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

func main() {
	name := flag.String("name", "Admin", "display name of the admin")
	email := flag.String("email", "", "login email, generated when empty")
	flag.Parse()

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	if *email == "" {
		*email = fmt.Sprintf("admin_%s@actualize.local", generateRandomString(4))
	}
	password := generateRandomString(8)

	admin, err := utilities.CreateAdmin(db.DB, *name, utilities.NormalizeEmail(*email), password)
	if err != nil {
		color.Red("failed to create admin: %v", database.TranslateError(err, "Admin not found"))
		os.Exit(1)
	}

	// Print credentials (only show plain password here!)
	color.Green("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email:    %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")
}
