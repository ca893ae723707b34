package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/keycloak"
	tomlrepo "github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/repo/toml"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/rest"
	chainstore "github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/secrets/chain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/application"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

type app struct {
	sessions  *application.SessionManager
	catalog   *application.CatalogCache
	catalogEd *application.CatalogService
	orders    *application.OrderSubmitter
	cartRepo  ports.CartRepository
	provider  *keycloak.Provider
	login     loginConfig
	logger    zerolog.Logger
	now       func() time.Time
}

type loginConfig struct {
	ListenAddr string
	Timeout    time.Duration
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix("GPC")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault("api.base.url", "http://localhost:8888")
	cfg.SetDefault("keycloak.url", "http://localhost:8080")
	cfg.SetDefault("keycloak.realm", "gestion-produits_commandes")
	cfg.SetDefault("keycloak.client.id", "frontend-app")
	cfg.SetDefault("auth.listen", "127.0.0.1:1455")

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	sessionRepo, err := tomlrepo.NewSessionRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}
	cartRepo, err := tomlrepo.NewCartRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire cart repository: %w", err)
	}
	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".gpc", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	provider := keycloak.NewProvider(
		cfg.GetString("keycloak.url"),
		cfg.GetString("keycloak.realm"),
		cfg.GetString("keycloak.client.id"),
		http.DefaultClient,
		logger,
	)

	apiClient := rest.NewClient(cfg.GetString("api.base.url"), http.DefaultClient, logger)

	sessions := application.NewSessionManager(sessionRepo, secretStore, provider, ports.SystemClock{})
	catalog := application.NewCatalogCache(apiClient, sessions)

	return &app{
		sessions:  sessions,
		catalog:   catalog,
		catalogEd: application.NewCatalogService(apiClient, catalog, sessions),
		orders:    application.NewOrderSubmitter(apiClient, sessions),
		cartRepo:  cartRepo,
		provider:  provider,
		login: loginConfig{
			ListenAddr: cfg.GetString("auth.listen"),
			Timeout:    5 * time.Minute,
		},
		logger: logger,
		now:    time.Now,
	}, nil
}

// requireSession runs silent initialization and fails when no
// authenticated session came out of it.
func requireSession(ctx context.Context, app *app) (domain.Session, error) {
	session := app.sessions.Initialize(ctx)
	if !session.Authenticated {
		return session, fmt.Errorf("%w: run 'gpc login' first", domain.ErrNotAuthenticated)
	}
	return session, nil
}
