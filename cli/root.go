package cli

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-platform/db"
)

type options struct {
	databaseURL string
	output      string
	verbose     bool
}

var opts = &options{}

// NewRootCmd creates the operator CLI root command.
func NewRootCmd() *cobra.Command {
	_ = godotenv.Load()
	opts.databaseURL = os.Getenv("DATABASE_URL")
	opts.output = "text"

	rootCmd := &cobra.Command{
		Use:   "tournament-admin",
		Short: "Operator tool for the tournament platform",
		Long: `tournament-admin runs database migrations, creates administrator accounts
and prints the organizer application review queue.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", opts.databaseURL, "Postgres DSN (env: DATABASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "Verbose output")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCreateAdminCmd())
	rootCmd.AddCommand(newApplicationsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() (*sql.DB, error) {
	if opts.databaseURL == "" {
		return nil, errors.New("database url is not set, use --database-url or DATABASE_URL")
	}
	// операторским командам хватает пары соединений
	return db.Open(opts.databaseURL, db.PoolConfig{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		PingTimeout:     5 * time.Second,
	})
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
