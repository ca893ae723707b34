package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session and its permissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := app.sessions.Initialize(cmd.Context())
			policy := domain.ResolveRolePolicy(session.Roles)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Session domain.Session
					Policy  domain.RolePolicy
				}{Session: session, Policy: policy})
			}

			out := cmd.OutOrStdout()
			if !session.Authenticated {
				_, err := fmt.Fprintln(out, "Not logged in. Run 'gpc login'.")
				return err
			}

			_, _ = fmt.Fprintf(out, "Logged in as %s\n", session.DisplayName())
			if session.Profile != nil && session.Profile.Email != "" {
				_, _ = fmt.Fprintf(out, "Email: %s\n", session.Profile.Email)
			}
			_, _ = fmt.Fprintf(out, "Roles: %s\n", strings.Join(session.Roles, ", "))
			_, err := fmt.Fprintf(out, "View: %s\n", viewLabel(policy))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func viewLabel(policy domain.RolePolicy) string {
	switch {
	case policy.IsAdmin:
		return "administrator (catalog management, all orders)"
	case policy.CanOrder:
		return "customer (catalog, cart, own orders)"
	default:
		return "read-only (catalog browsing)"
	}
}
