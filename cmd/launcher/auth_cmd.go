package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/identity"
	"github.com/idklol/launcher/internal/prefs"
	"github.com/idklol/launcher/internal/state"
)

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the identity server and the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.env()
			if err != nil {
				return err
			}
			defer env.Close()
			out := cmd.OutOrStdout()

			session := &state.Store{}
			env.RestoreSession(session)
			if snap := session.Snapshot(); snap.LoggedIn {
				fmt.Fprintf(out, "signed in:       %s\n", orDash(snap.Username))
			} else {
				fmt.Fprintln(out, "signed in:       no")
			}

			baseURL := identity.NormalizeBaseURL(env.Settings.Load().KeycloakURL)
			if baseURL == "" {
				fmt.Fprintln(out, "identity server: offline (no URL configured)")
				return errors.New("identity server URL is not configured")
			}
			result := env.Identity.CheckStatus(cmd.Context(), baseURL)
			if !result.OK {
				fmt.Fprintf(out, "identity server: offline (%s)\n", baseURL)
				return fmt.Errorf("identity server %s is offline", baseURL)
			}
			fmt.Fprintf(out, "identity server: online (%s)\n", baseURL)
			if result.RegistrationEndpoint != "" {
				fmt.Fprintln(out, "registration:    available")
			} else {
				fmt.Fprintln(out, "registration:    unavailable")
			}
			return nil
		},
	}
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token for the game",
		Long: `Sign in with a username and password. The password is read from the
terminal without echo, or from standard input when it is not a terminal.

Examples:
  launcher login -u ember
  echo "$PASSWORD" | launcher login -u ember`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.env()
			if err != nil {
				return err
			}
			defer env.Close()

			p := newPrompter(cmd)
			if username == "" {
				username = env.Prefs.LastUsername
			}
			user, err := p.valueOrPrompt(username, "Username: ")
			if err != nil {
				return err
			}
			password, err := p.Secret("Password: ")
			if err != nil {
				return err
			}

			result := env.Identity.Login(cmd.Context(), env.Settings.Load().KeycloakURL, user, password)
			if !result.Success || result.Token == nil {
				return errors.New(result.Error)
			}
			if err := env.Sessions.Save(result.Token.AccessToken); err != nil {
				return fmt.Errorf("store access token: %w", err)
			}

			if err := prefs.Save(flags.prefsPath, env.Prefs.WithUser(user)); err != nil {
				env.Logger.Warn("save prefs", zap.Error(err))
			}

			name := result.Token.Username()
			if name == "" {
				name = user
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (default: last signed-in user, else prompt)")
	return cmd
}

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.env()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.Sessions.Clear(); err != nil {
				return err
			}
			env.Logger.Info("signed out")
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newRegisterCmd(flags *rootFlags) *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the identity server",
		Long: `Create an account through the registration endpoint the identity server
advertises. Fails when the server is offline or does not allow sign-up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.env()
			if err != nil {
				return err
			}
			defer env.Close()

			status := env.Identity.CheckStatus(cmd.Context(), env.Settings.Load().KeycloakURL)
			if !status.OK {
				return errors.New("identity server is offline")
			}
			if status.RegistrationEndpoint == "" {
				return errors.New("account creation is not available on this server")
			}
			env.Logger.Info("opening registration page", zap.String("endpoint", status.RegistrationEndpoint))

			p := newPrompter(cmd)
			user, err := p.valueOrPrompt(username, "Username: ")
			if err != nil {
				return err
			}
			mail, err := p.valueOrPrompt(email, "Email: ")
			if err != nil {
				return err
			}
			password, err := p.Secret("Password: ")
			if err != nil {
				return err
			}

			result := env.Identity.Register(cmd.Context(), status.RegistrationEndpoint, user, mail, password)
			if !result.Success {
				return errors.New(result.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %s created. Sign in with: launcher login -u %s\n", user, user)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted when empty)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address (prompted when empty)")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
