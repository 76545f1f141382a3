package main

import (
	"database/sql"
	"fmt"
	"os"

	"snapgram/pkg/config"
	"snapgram/pkg/database"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var migrationsDir string

var rootCmd = &cobra.Command{
	Use:           "migrate [command]",
	Short:         "Manage the Snapgram database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "directory with migration files")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *sql.DB, _ []string) error {
				if err := goose.Up(db, migrationsDir); err != nil {
					return fmt.Errorf("failed to run migrations: %w", err)
				}
				fmt.Println("Migrations applied successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *sql.DB, _ []string) error {
				if err := goose.Down(db, migrationsDir); err != nil {
					return fmt.Errorf("failed to rollback migrations: %w", err)
				}
				fmt.Println("Migrations rolled back successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *sql.DB, _ []string) error {
				return goose.Status(db, migrationsDir)
			}),
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a new SQL migration",
			Args:  cobra.ExactArgs(1),
			RunE: withDB(func(db *sql.DB, args []string) error {
				if err := goose.Create(db, migrationsDir, args[0], "sql"); err != nil {
					return fmt.Errorf("failed to create migration: %w", err)
				}
				fmt.Printf("Created migration: %s\n", args[0])
				return nil
			}),
		},
	)
}

// withDB opens the postgres connection described by the environment for the
// duration of one command.
func withDB(run func(db *sql.DB, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := sql.Open("postgres", database.PostgresDSN(cfg))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("failed to set dialect: %w", err)
		}
		return run(db, args)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
