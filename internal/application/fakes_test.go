package application

import (
	"context"
	"io"
	"time"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type staticTokenSource struct {
	token string
	calls int
}

func (s *staticTokenSource) GetValidToken(context.Context) string {
	s.calls++
	return s.token
}

type memSessionRepo struct {
	record ports.SessionRecord
	stored bool
}

func (r *memSessionRepo) Load(context.Context) (ports.SessionRecord, error) {
	if !r.stored {
		return ports.SessionRecord{}, ports.ErrNoStoredSession
	}
	return r.record, nil
}

func (r *memSessionRepo) Save(_ context.Context, record ports.SessionRecord) error {
	r.record = record
	r.stored = true
	return nil
}

func (r *memSessionRepo) Clear(context.Context) error {
	r.record = ports.SessionRecord{}
	r.stored = false
	return nil
}

type memSecretStore struct {
	values map[string]string
}

func newMemSecretStore() *memSecretStore {
	return &memSecretStore{values: map[string]string{}}
}

func (s *memSecretStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", domain.ErrSecretNotFound
	}
	return value, nil
}

func (s *memSecretStore) Put(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memSecretStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

// fakeIdentityProvider treats any access token of the form it minted as
// carrying the configured claims, and counts renewal calls.
type fakeIdentityProvider struct {
	claims       domain.TokenClaims
	profile      domain.Profile
	profileErr   error
	refreshed    domain.TokenSet
	refreshErr   error
	refreshCalls int
	logoutCalls  int
	claimsErr    error
}

func (p *fakeIdentityProvider) Refresh(_ context.Context, refreshToken string) (domain.TokenSet, error) {
	p.refreshCalls++
	if p.refreshErr != nil {
		return domain.TokenSet{}, p.refreshErr
	}
	return p.refreshed, nil
}

func (p *fakeIdentityProvider) Logout(context.Context, string) error {
	p.logoutCalls++
	return nil
}

func (p *fakeIdentityProvider) Claims(string) (domain.TokenClaims, error) {
	if p.claimsErr != nil {
		return domain.TokenClaims{}, p.claimsErr
	}
	return p.claims, nil
}

func (p *fakeIdentityProvider) FetchProfile(context.Context, string) (domain.Profile, error) {
	if p.profileErr != nil {
		return domain.Profile{}, p.profileErr
	}
	return p.profile, nil
}

type fakeOrderAPI struct {
	created     domain.Order
	createErr   error
	lastRequest domain.OrderRequest
	lastToken   string

	allOrders    []domain.Order
	clientOrders map[string][]domain.Order
	listAllCalls int
	lastClientID string
}

func (a *fakeOrderAPI) CreateOrder(_ context.Context, token string, req domain.OrderRequest) (domain.Order, error) {
	a.lastToken = token
	a.lastRequest = req
	if a.createErr != nil {
		return domain.Order{}, a.createErr
	}
	return a.created, nil
}

func (a *fakeOrderAPI) ListOrders(_ context.Context, token string) ([]domain.Order, error) {
	a.lastToken = token
	a.listAllCalls++
	return a.allOrders, nil
}

func (a *fakeOrderAPI) ListOrdersByClient(_ context.Context, token string, clientID string) ([]domain.Order, error) {
	a.lastToken = token
	a.lastClientID = clientID
	return a.clientOrders[clientID], nil
}

type fakeCatalogAPI struct {
	products  []domain.Product
	listErr   error
	listCalls int

	created   domain.Product
	createErr error
	lastInput ports.ProductInput
	deleted   []domain.ProductID
}

func (a *fakeCatalogAPI) ListProducts(_ context.Context, token string) ([]domain.Product, error) {
	a.listCalls++
	if a.listErr != nil {
		return nil, a.listErr
	}
	return a.products, nil
}

func (a *fakeCatalogAPI) CreateProduct(_ context.Context, _ string, input ports.ProductInput) (domain.Product, error) {
	a.lastInput = input
	if a.createErr != nil {
		return domain.Product{}, a.createErr
	}
	return a.created, nil
}

func (a *fakeCatalogAPI) UpdateProduct(_ context.Context, _ string, id domain.ProductID, input ports.ProductInput) (domain.Product, error) {
	a.lastInput = input
	product := a.created
	product.ID = id
	return product, nil
}

func (a *fakeCatalogAPI) DeleteProduct(_ context.Context, _ string, id domain.ProductID) error {
	a.deleted = append(a.deleted, id)
	return nil
}

func (a *fakeCatalogAPI) UploadProductImage(_ context.Context, _ string, _ domain.ProductID, _ string, _ io.Reader) error {
	return nil
}
