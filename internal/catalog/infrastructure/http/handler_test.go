package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelmart/storefront/internal/catalog/application"
	"github.com/pixelmart/storefront/internal/catalog/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
	"github.com/pixelmart/storefront/pkg/auth"
)

type fakeRepo struct {
	products map[string]domain.Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]domain.Product{}}
}

func (f *fakeRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, apperror.New(apperror.CodeNotFound, "product not found")
	}
	return p, nil
}

func (f *fakeRepo) GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := map[string]domain.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return apperror.New(apperror.CodeNotFound, "product not found")
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return apperror.New(apperror.CodeNotFound, "product not found")
	}
	delete(f.products, id)
	return nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	return domain.Product{}, false, nil
}
func (noopCache) Set(ctx context.Context, p domain.Product) error { return nil }
func (noopCache) Invalidate(ctx context.Context, id string) error { return nil }

func newTestHandler(t *testing.T) (*fakeRepo, http.Handler, string) {
	t.Helper()
	repo := newFakeRepo()
	tokens := auth.NewManager("test-secret")
	svc := application.NewService(slog.Default(), repo, noopCache{})
	h := NewHandler(slog.Default(), svc, tokens)

	admin, err := tokens.Issue(auth.Identity{UserID: "admin-1", Email: "admin@pixelmart.com", Admin: true})
	require.NoError(t, err)
	return repo, h.Routes(), admin
}

func post(routes http.Handler, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	return rec
}

func TestCreate_AcceptsLegacyNameAndPlatform(t *testing.T) {
	repo, routes, admin := newTestHandler(t)

	rec := post(routes, "/", admin,
		`{"name":"Star Raider","platform":"PS5","price":29.99,"stock":5,"category":"Action"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Star Raider", created.Title)
	assert.Equal(t, []string{"PS5"}, created.Platforms)

	// The stored document already carries the canonical fields; the legacy
	// names never leave the handler.
	stored := repo.products[created.ID]
	assert.Equal(t, "Star Raider", stored.Title)
	assert.Equal(t, []string{"PS5"}, stored.Platforms)
}

func TestCreate_CanonicalFieldsWinOverLegacy(t *testing.T) {
	_, routes, admin := newTestHandler(t)

	rec := post(routes, "/", admin,
		`{"title":"Dungeon Forge","name":"Old Name","platforms":["PC","PS5"],"platform":"Xbox One","price":14.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Dungeon Forge", created.Title)
	assert.Equal(t, []string{"PC", "PS5"}, created.Platforms)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	_, routes, _ := newTestHandler(t)
	tokens := auth.NewManager("test-secret")
	user, err := tokens.Issue(auth.Identity{UserID: "user-1", Email: "u@example.com"})
	require.NoError(t, err)

	rec := post(routes, "/", user, `{"title":"Star Raider","price":29.99}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = post(routes, "/", "", `{"title":"Star Raider","price":29.99}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdate_MapsLegacyFieldsAtBoundary(t *testing.T) {
	repo, routes, admin := newTestHandler(t)

	rec := post(routes, "/", admin, `{"title":"Star Raider","price":29.99}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodPut, "/"+created.ID,
		strings.NewReader(`{"name":"Star Raider II","platform":"PC"}`))
	req.Header.Set("Authorization", "Bearer "+admin)
	upd := httptest.NewRecorder()
	routes.ServeHTTP(upd, req)
	require.Equal(t, http.StatusOK, upd.Code)

	stored := repo.products[created.ID]
	assert.Equal(t, "Star Raider II", stored.Title)
	assert.Equal(t, []string{"PC"}, stored.Platforms)
	// Fields the patch did not mention keep their values.
	assert.Equal(t, 29.99, stored.Price)
}
