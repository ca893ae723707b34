package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/version"
)

// executeCLI runs the root command against an isolated home and state
// directory, so tests never touch the developer's real session.
func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("GPC_STATE_DIR", t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version, strings.TrimSpace(out))
}

func TestStatusWithoutStoredSession(t *testing.T) {
	out, err := executeCLI(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in. Run 'gpc login'.")
}

func TestStatusJSONWithoutStoredSession(t *testing.T) {
	out, err := executeCLI(t, "status", "--json")
	require.NoError(t, err)

	var payload struct {
		Session domain.Session
		Policy  domain.RolePolicy
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.True(t, payload.Session.Initialized)
	assert.False(t, payload.Session.Authenticated)
	assert.False(t, payload.Policy.CanOrder)
}

func TestCartCommandsRequireAuthentication(t *testing.T) {
	_, err := executeCLI(t, "cart", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestOrdersSubmitRequiresAuthentication(t *testing.T) {
	_, err := executeCLI(t, "orders", "submit")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestProductsMutationsRequireAuthentication(t *testing.T) {
	_, err := executeCLI(t, "products", "create", "--name", "Clavier")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestUnknownCommandFails(t *testing.T) {
	_, err := executeCLI(t, "does-not-exist")
	assert.Error(t, err)
}
