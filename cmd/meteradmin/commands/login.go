package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meteradmin/internal/crypto"
	"meteradmin/internal/domain"
)

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an admin and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readSecret("Password: "); err != nil {
					return err
				}
			}
			sess, err := appCtx.Client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := appCtx.Session.SaveSession(sess); err != nil {
				return err
			}
			logger.Debug("session saved", zap.String("token", crypto.Fingerprint([]byte(sess.Token))))
			fmt.Printf("Logged in as %s until %s\n", sess.Email, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin e-mail")
	cmd.Flags().StringVar(&password, "password", "", "admin password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Session.ClearSession(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := appCtx.Authed()
			if err != nil {
				return err
			}
			var change domain.PasswordChange
			for _, f := range []struct {
				prompt string
				dst    *string
			}{
				{"Current password: ", &change.CurrentPassword},
				{"New password: ", &change.NewPassword},
				{"Confirm new password: ", &change.ConfirmPassword},
			} {
				if *f.dst, err = readSecret(f.prompt); err != nil {
					return err
				}
			}
			if err := c.ChangePassword(cmd.Context(), change); err != nil {
				return err
			}
			fmt.Println("Password changed")
			return nil
		},
	}
}
