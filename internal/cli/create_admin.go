package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/config"
	"github.com/meninleo/goodreads/internal/database"
	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/entities"
)

// CreateAdminCommand provisions a profile that carries the admin role.
type CreateAdminCommand struct {
	Email        string
	Password     string
	FullName     string
	DatabasePath string
}

func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address for the admin account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the admin account (required)")
	fs.StringVar(&cmd.FullName, "name", "Administrator", "Full name for the admin account")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user profile with the admin role.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-admin -email admin@example.com -password secret123\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("email and password are required")
	}
	if len(cmd.Password) < auth.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
	}

	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(cmd.Password, auth.DefaultBcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	profiles := accounts.NewRepository(db.DB)
	profile, err := profiles.CreateProfile(cmd.Email, hash, cmd.FullName)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	var adminRole entities.Role
	if err := db.DB.First(&adminRole, entities.RoleAdmin).Error; err != nil {
		return fmt.Errorf("failed to load admin role: %w", err)
	}
	if err := db.DB.Model(profile).Association("Roles").Append(&adminRole); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}

	fmt.Printf("Created admin profile %d (%s)\n", profile.ID, profile.Email)
	return nil
}
