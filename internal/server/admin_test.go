package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/af-corp/model-catalog/internal/auth"
	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/types"
)

type sliceSource []types.ModelRecord

func (s sliceSource) Load(context.Context) ([]types.ModelRecord, error) { return s, nil }

type failingSource struct{}

func (failingSource) Load(context.Context) ([]types.ModelRecord, error) {
	return nil, catalog.ErrCatalogUnavailable
}

const adminKey = "catalog-test-abcdefghijklmnopqrstuvwxyz012345"

func newAdminServer(t *testing.T, src catalog.RecordSource) (http.Handler, *catalog.Holder) {
	t.Helper()
	holder := catalog.NewHolder()
	holder.Set(testRecords()[:1])
	h := NewHandler(holder, nil, nil, nil, "test")
	return h.Routes(Options{
		Admin: auth.Middleware(auth.NewStaticKeyStore([]string{auth.HashKey(adminKey)})),
		Reload: func(ctx context.Context) error {
			return holder.Reload(ctx, src)
		},
	}), holder
}

func adminPost(h http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAdminReload(t *testing.T) {
	h, holder := newAdminServer(t, sliceSource(testRecords()))

	rec := adminPost(h, adminKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp reloadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "reloaded" || resp.Records != 2 {
		t.Errorf("unexpected response %+v", resp)
	}
	if records, _ := holder.Records(); len(records) != 2 {
		t.Errorf("holder should carry the reloaded set, got %d records", len(records))
	}
}

func TestAdminReload_RequiresKey(t *testing.T) {
	h, holder := newAdminServer(t, sliceSource(testRecords()))

	for _, key := range []string{"", "catalog-test-wrong"} {
		if rec := adminPost(h, key); rec.Code != http.StatusUnauthorized {
			t.Errorf("key %q: expected 401, got %d", key, rec.Code)
		}
	}
	if records, _ := holder.Records(); len(records) != 1 {
		t.Errorf("unauthenticated request must not reload, got %d records", len(records))
	}
}

func TestAdminReload_FailureKeepsPrevious(t *testing.T) {
	h, holder := newAdminServer(t, failingSource{})

	rec := adminPost(h, adminKey)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !errors.Is(holder.Reload(context.Background(), failingSource{}), catalog.ErrCatalogUnavailable) {
		t.Error("expected reload error to wrap ErrCatalogUnavailable")
	}
	if records, ok := holder.Records(); !ok || len(records) != 1 {
		t.Errorf("previous set should survive, got %d records (loaded=%v)", len(records), ok)
	}
}

func TestAdminRoutesNotMountedWithoutAuth(t *testing.T) {
	holder := catalog.NewHolder()
	h := NewHandler(holder, nil, nil, nil, "test").Routes(Options{
		Reload: func(context.Context) error { return nil },
	})
	if rec := adminPost(h, adminKey); rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("admin route should not exist without Admin middleware, got %d", rec.Code)
	}
}
