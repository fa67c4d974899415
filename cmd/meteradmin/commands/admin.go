package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"meteradmin/internal/app"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Local administration of a server data directory",
	}
	cmd.AddCommand(adminInitCmd())
	return cmd
}

func adminInitCmd() *cobra.Command {
	var configPath, dataDir, backend, name, email, password string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an admin account directly in the server's data dir",
		Long: `Create an admin account by writing to the server's stores directly.
Run it on the server host, with the same config the server uses, to seed the
first admin before anyone can log in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir, cfg.SQLitePath, cfg.TokenSecretFile = dataDir, "", ""
				cfg.ApplyDefaults()
			}
			if backend != "" {
				cfg.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if password == "" {
				if password, err = readSecret("Password: "); err != nil {
					return err
				}
				confirm, err := readSecret("Confirm password: ")
				if err != nil {
					return err
				}
				if confirm != password {
					return fmt.Errorf("passwords do not match")
				}
			}

			w, err := app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			defer w.Close()

			uid, err := w.Auth.BootstrapAdmin(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Admin %s created (%s)\n", email, uid)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "server config file")
	f.StringVar(&dataDir, "data-dir", "", "server data dir (overrides the config)")
	f.StringVar(&backend, "backend", "", "document backend: file or sqlite (overrides the config)")
	f.StringVar(&name, "name", "Admin", "display name")
	f.StringVar(&email, "email", "", "admin e-mail")
	f.StringVar(&password, "password", "", "admin password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
