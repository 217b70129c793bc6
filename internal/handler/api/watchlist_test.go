package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

type memWatchlist struct {
	lists map[string][]json.RawMessage
}

func newMemWatchlist() *memWatchlist {
	return &memWatchlist{lists: make(map[string][]json.RawMessage)}
}

func (m *memWatchlist) Get(_ context.Context, userID string) ([]json.RawMessage, error) {
	return m.lists[userID], nil
}

func (m *memWatchlist) Append(_ context.Context, userID string, entry json.RawMessage) error {
	m.lists[userID] = append(m.lists[userID], entry)
	return nil
}

func (m *memWatchlist) RemoveAt(_ context.Context, userID string, index int) error {
	entries := m.lists[userID]
	if index < 0 || index >= len(entries) {
		return domrepo.ErrIndexOutOfRange
	}
	m.lists[userID] = append(entries[:index], entries[index+1:]...)
	return nil
}

// staticVerifier accepts one token.
type staticVerifier struct {
	token  string
	userID string
}

func (v staticVerifier) Verify(_ context.Context, token string) (string, error) {
	if token != v.token {
		return "", domrepo.ErrUnauthenticated
	}
	return v.userID, nil
}

func newWatchlistTestServer(t *testing.T, store domrepo.WatchlistStore) *echo.Echo {
	t.Helper()
	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	e := echo.New()
	NewWatchlistHandler(logger, store, staticVerifier{token: "good-token", userID: "user-1"}).RegisterRoutes(e)
	return e
}

func TestWatchlistRequiresAuth(t *testing.T) {
	e := newWatchlistTestServer(t, newMemWatchlist())

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWatchlistRejectsBadToken(t *testing.T) {
	e := newWatchlistTestServer(t, newMemWatchlist())

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer wrong")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWatchlistAddAndGet(t *testing.T) {
	store := newMemWatchlist()
	e := newWatchlistTestServer(t, store)

	body := `{"entry":{"symbol":"AAPL","note":"long term"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", strings.NewReader(body))
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.lists["user-1"]) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(store.lists["user-1"]))
	}
}

func TestWatchlistAddRejectsEmptyEntry(t *testing.T) {
	e := newWatchlistTestServer(t, newMemWatchlist())

	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWatchlistRemoveOutOfRange(t *testing.T) {
	e := newWatchlistTestServer(t, newMemWatchlist())

	req := httptest.NewRequest(http.MethodDelete, "/api/watchlist/5", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
