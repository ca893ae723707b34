package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/keycloak"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in through the identity provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, app)
		},
	}
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.sessions.Initialize(cmd.Context())
			if err := app.sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func runLogin(cmd *cobra.Command, app *app) error {
	pkce, err := keycloak.NewPKCEPair()
	if err != nil {
		return fmt.Errorf("generate pkce: %w", err)
	}
	state, err := keycloak.NewState()
	if err != nil {
		return fmt.Errorf("generate login state: %w", err)
	}

	server, err := keycloak.StartCallbackServer(app.login.ListenAddr, state)
	if err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}

	authURL, err := app.provider.AuthorizationURL(server.RedirectURI(), state, pkce.Challenge)
	if err != nil {
		_ = server.Close()
		return fmt.Errorf("build authorization url: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to log in:\n%s\n", authURL)

	code, err := server.WaitForCode(app.login.Timeout)
	if err != nil {
		return fmt.Errorf("wait for login callback: %w", err)
	}

	tokens, err := app.provider.ExchangeCode(cmd.Context(), code, server.RedirectURI(), pkce.Verifier)
	if err != nil {
		return fmt.Errorf("exchange code for tokens: %w", err)
	}

	session, err := app.sessions.CompleteLogin(cmd.Context(), tokens)
	if err != nil {
		return fmt.Errorf("complete login: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.DisplayName())
	return nil
}
