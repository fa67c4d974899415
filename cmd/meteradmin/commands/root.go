package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meteradmin/internal/app"
	"meteradmin/internal/domain"
	"meteradmin/internal/logging"
)

var (
	home      string
	serverURL string
	verbose   bool

	appCtx *app.App
	logger *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "meteradmin",
		Short:         "Administer officers, users and their water meters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			var err error
			logger, err = logging.New(level, "console")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".meteradmin")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			appCtx = app.New(app.ClientConfig{Home: home, ServerURL: serverURL}, logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	defaultServer := os.Getenv("METERADMIN_SERVER")
	if defaultServer == "" {
		defaultServer = "http://127.0.0.1:8080"
	}
	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.meteradmin)")
	root.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "server base URL ($METERADMIN_SERVER)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		loginCmd(),
		logoutCmd(),
		passwdCmd(),
		ownersCmd(domain.RoleOfficer),
		ownersCmd(domain.RoleUser),
		metersCmd(),
		adminCmd(),
	)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
	}
	return err
}

// describe adds a next step to errors the user can act on.
func describe(err error) string {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return err.Error() + " (run: meteradmin login)"
	}
	return err.Error()
}
