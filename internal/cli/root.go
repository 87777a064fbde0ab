// Package cli implements the pantry command-line interface.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dukerupert/pantry/internal/config"
	"github.com/dukerupert/pantry/internal/database"
	"github.com/dukerupert/pantry/internal/logging"
	"github.com/dukerupert/pantry/internal/pantry"
	"github.com/dukerupert/pantry/internal/store"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type app struct {
	v          *viper.Viper
	configFile string
	jsonOut    bool

	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "pantry",
		Short:         "Track perishable food across storage containers",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (YAML)")
	pf.String("db", "", "database path (default pantry.db)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.jsonOut, "json", false, "output JSON")
	a.v.BindPFlag(config.KeyDBPath, pf.Lookup("db"))
	a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	root.AddCommand(
		newServeCmd(a),
		newContainerCmd(a),
		newItemCmd(a),
		newRefreshCmd(a),
		newReportCmd(a),
		newTipCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// open connects to the database once per invocation.
func (a *app) open() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.Open(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db
	return db, nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *app) service(opts ...pantry.Option) (*pantry.Service, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	opts = append([]pantry.Option{
		pantry.WithHorizon(a.cfg.NearExpiryDays),
		pantry.WithLogger(a.logger.With("component", "pantry")),
	}, opts...)
	return pantry.New(store.NewInventoryStore(db), opts...), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pantry %s\n", Version)
		},
	}
}
