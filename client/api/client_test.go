package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yajna-funds/server/internal/adapter/memstore"
	"github.com/yajna-funds/server/internal/domain"
	"github.com/yajna-funds/server/internal/http/handlers"
	"github.com/yajna-funds/server/internal/http/httpapi"
)

func newTestServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	store := memstore.New()
	app := handlers.NewApp(store, zerolog.Nop())
	router := httpapi.NewRouter(app, httpapi.Options{Logger: zerolog.Nop(), DefaultLocale: "en"})

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			hits.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClientCachesReads(t *testing.T) {
	srv, hits := newTestServer(t)
	client := NewClient(srv.URL, nil)
	ctx := context.Background()

	if _, err := client.Campaigns(ctx); err != nil {
		t.Fatalf("Campaigns() error: %v", err)
	}
	if _, err := client.Campaigns(ctx); err != nil {
		t.Fatalf("Campaigns() error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server GET hits = %d, want 1 (second read served from cache)", got)
	}
}

func TestClientInvalidatesOnMutation(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(srv.URL, nil)
	ctx := context.Background()

	user, err := client.CreateUser(ctx, domain.NewUser{ExternalRef: "ext-1", Username: "asha", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	before, err := client.Campaigns(ctx)
	if err != nil {
		t.Fatalf("Campaigns() error: %v", err)
	}
	if len(before) != 0 {
		t.Fatalf("expected no campaigns, got %d", len(before))
	}

	if _, err := client.CreateCampaign(ctx, domain.NewCampaign{
		UserID:      user.ID,
		Title:       "Orchard",
		Description: "Fruit trees",
		FundingGoal: "1000",
	}); err != nil {
		t.Fatalf("CreateCampaign() error: %v", err)
	}

	after, err := client.Campaigns(ctx)
	if err != nil {
		t.Fatalf("Campaigns() error: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("campaigns after create = %d, want 1 (cache invalidated)", len(after))
	}
}

func TestClientSurfacesFieldErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(srv.URL, nil)

	_, err := client.CreateCampaign(context.Background(), domain.NewCampaign{UserID: 1})
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || len(apiErr.Fields) == 0 {
		t.Errorf("Error = %+v, want 400 with field details", apiErr)
	}
}

func TestClientMapsNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(srv.URL, nil)

	_, err := client.Campaign(context.Background(), 999)
	if !NotFound(err) {
		t.Fatalf("error = %v, want 404", err)
	}
}
