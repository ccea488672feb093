package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	mw "github.com/kiranshivaraju/hirescreen/internal/api/middleware"
	"github.com/kiranshivaraju/hirescreen/internal/config"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys",
}

var keysCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an API key, bootstrapping the user when needed",
	Long:  "Create an API key for the user with the given email. The user (and organization, when --org-slug is set) is created if missing. The raw key is printed once.",
	RunE:  runKeysCreate,
}

type keyOptions struct {
	Email    string
	Name     string
	FullName string
	OrgSlug  string
	Scopes   []string
}

var keyOpts keyOptions

func init() {
	keysCreateCmd.Flags().StringVar(&keyOpts.Email, "email", "", "Email of the key owner (required)")
	keysCreateCmd.Flags().StringVar(&keyOpts.Name, "name", "", "Key name (required)")
	keysCreateCmd.Flags().StringVar(&keyOpts.FullName, "full-name", "", "Full name for a newly created user")
	keysCreateCmd.Flags().StringVar(&keyOpts.OrgSlug, "org-slug", "", "Organization slug for a newly created user")
	keysCreateCmd.Flags().StringSliceVar(&keyOpts.Scopes, "scopes", nil, "Comma-separated key scopes, e.g. admin")
	_ = keysCreateCmd.MarkFlagRequired("email")
	_ = keysCreateCmd.MarkFlagRequired("name")

	keysCmd.AddCommand(keysCreateCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysCreate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	pool, err := store.Connect(cmd.Context(), cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	raw, err := createKey(cmd.Context(), store.NewPostgresStore(pool), keyOpts, time.Now().UTC())
	if err != nil {
		return err
	}
	printKey(os.Stdout, keyOpts.Email, raw)
	return nil
}

// createKey resolves or creates the owner and stores a new key for them.
func createKey(ctx context.Context, st store.Store, opts keyOptions, now time.Time) (string, error) {
	email := strings.ToLower(strings.TrimSpace(opts.Email))
	if email == "" || strings.TrimSpace(opts.Name) == "" {
		return "", errors.New("--email and --name are required")
	}

	user, err := st.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = createUser(ctx, st, email, opts, now)
	}
	if err != nil {
		return "", fmt.Errorf("resolve user: %w", err)
	}

	key, raw, err := mw.NewAPIKey(user.ID, strings.TrimSpace(opts.Name), opts.Scopes, now)
	if err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	if err := st.CreateAPIKey(ctx, key); err != nil {
		return "", fmt.Errorf("store key: %w", err)
	}
	return raw, nil
}

func createUser(ctx context.Context, st store.Store, email string, opts keyOptions, now time.Time) (*models.User, error) {
	user := &models.User{
		ID:        uuid.New(),
		FullName:  strings.TrimSpace(opts.FullName),
		Email:     email,
		Role:      "recruiter",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.FullName == "" {
		user.FullName, _, _ = strings.Cut(strings.TrimSpace(opts.Email), "@")
	}
	for _, s := range opts.Scopes {
		if s == "admin" {
			user.Role = "admin"
		}
	}

	if slug := strings.TrimSpace(opts.OrgSlug); slug != "" {
		org, err := st.GetOrganizationBySlug(ctx, slug)
		if errors.Is(err, store.ErrNotFound) {
			org = &models.Organization{ID: uuid.New(), Name: slug, Slug: slug, Plan: "free", CreatedAt: now, UpdatedAt: now}
			err = st.CreateOrganization(ctx, org)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve organization %q: %w", slug, err)
		}
		user.OrganizationID = &org.ID
	}

	if err := st.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func printKey(w io.Writer, email, raw string) {
	fmt.Fprintf(w, "API key for %s (shown once):\n%s\n", email, raw)
}
