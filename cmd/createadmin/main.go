package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/repositories"
	"github.com/nimish-23/user-account-service/internal/validation"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// adminInput carries the prompted fields through validation.
type adminInput struct {
	Username string `json:"username" validate:"required,min=3,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Interactive provisioning of an admin account, for use from an operator
// shell rather than the HTTP surface.
func main() {
	configPath := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()

	if err := run(context.Background(), *configPath); err != nil {
		log.Fatalf("createadmin failed: %v", err)
	}
}

func run(ctx context.Context, configPath string) error {
	_ = godotenv.Load(configPath)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	pgPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		return err
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "user"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		pgPort,
		getEnv("POSTGRES_DB", "database"),
	)

	input, err := prompt()
	if err != nil {
		return err
	}

	if fieldErrors := validation.Validate(input); fieldErrors != nil {
		for field, msgs := range fieldErrors {
			fmt.Printf("%s: %s\n", field, strings.Join(msgs, " "))
		}
		return fmt.Errorf("validation failed")
	}

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	readRepo := repositories.NewUserReadRepository(db)
	writeRepo := repositories.NewUserWriteRepository(db)

	existing, err := readRepo.GetByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	id, err := writeRepo.Save(ctx, input.Username, input.Email, string(hashedPassword), true)
	if err != nil {
		return err
	}

	logger.Log.Infow("admin user created", "user_id", id, "username", input.Username)
	fmt.Printf("Admin user created successfully: %s\n", id)
	return nil
}

// prompt reads username and email from stdin and the password with echo
// disabled.
func prompt() (adminInput, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return adminInput{}, err
	}

	fmt.Print("Enter email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return adminInput{}, err
	}

	fmt.Print("Enter password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return adminInput{}, err
	}

	return adminInput{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: string(passwordBytes),
	}, nil
}
