package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"portfoliohub/internal/hub"
	"portfoliohub/internal/provider"
)

func testServer() *Server {
	oms := provider.NewSeededOMS()
	md := provider.NewSeededMarketData(decimal.RequireFromString("100.00"))
	return NewServer(
		hub.NewAccountService(oms),
		hub.NewPortfolioService(oms, md),
		hub.NewReferenceDataService(md),
	)
}

func doGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) Problem {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("problem Content-Type = %q", ct)
	}
	var p Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem body: %v", err)
	}
	return p
}

func TestHealthEndpoint(t *testing.T) {
	w := doGet(t, testServer().Router(), "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "UP" {
		t.Errorf("status = %v, want UP", body["status"])
	}
	if body["service"] != "portfoliohub" {
		t.Errorf("service = %v", body["service"])
	}
	checks, _ := body["checks"].(map[string]interface{})
	if checks["oms"] != "UP" || checks["marketData"] != "UP" {
		t.Errorf("checks = %v", checks)
	}
}

func TestGetPortfolio_OK(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/accounts/ACC-12345/portfolio")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		AccountID  string          `json:"accountId"`
		TotalValue decimal.Decimal `json:"totalValue"`
		Positions  []struct {
			Symbol string `json:"symbol"`
		} `json:"positions"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.AccountID != "ACC-12345" {
		t.Errorf("accountId = %q", body.AccountID)
	}
	if !body.TotalValue.Equal(decimal.RequireFromString("40068.75")) {
		t.Errorf("totalValue = %s, want 40068.75", body.TotalValue)
	}
	if len(body.Positions) != 3 {
		t.Errorf("expected 3 positions, got %d", len(body.Positions))
	}
}

func TestGetPortfolio_UnknownAccountIs404(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/accounts/ACC-99999/portfolio")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	p := decodeProblem(t, w)
	if p.ErrorCode != "RESOURCE_NOT_FOUND" {
		t.Errorf("errorCode = %q", p.ErrorCode)
	}
	if p.Instance != "/api/v1/accounts/ACC-99999/portfolio" {
		t.Errorf("instance = %q", p.Instance)
	}
}

func TestGetPortfolio_BadAccountIDPatternIs400(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/accounts/acc-123/portfolio")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	p := decodeProblem(t, w)
	if p.ErrorCode != "VALIDATION_ERROR" {
		t.Errorf("errorCode = %q", p.ErrorCode)
	}
	if len(p.Violations) != 1 || p.Violations[0].Field != "accountId" {
		t.Errorf("violations = %+v", p.Violations)
	}
}

func TestListAccounts_OK(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/clients/CLIENT-98765/accounts")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var accounts []hub.AccountView
	if err := json.NewDecoder(w.Body).Decode(&accounts); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accounts))
	}
}

func TestListAccounts_UnknownClientIs404(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/clients/CLIENT-00000/accounts")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListAccounts_EmptyAfterFilterIs200(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/clients/CLIENT-98765/accounts?accountStatus=CLOSED")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var accounts []hub.AccountView
	if err := json.NewDecoder(w.Body).Decode(&accounts); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("expected empty list, got %d", len(accounts))
	}
}

func TestListAccounts_InvalidFilterEnumIs400(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/clients/CLIENT-98765/accounts?accountType=HEDGE_FUND")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	p := decodeProblem(t, w)
	if len(p.Violations) != 1 || p.Violations[0].Field != "accountType" {
		t.Errorf("violations = %+v", p.Violations)
	}
}

func TestListAccounts_BadClientIDPatternIs400(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/clients/98765/accounts")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetInstrument_OK(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/reference/instruments/AAPL")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var inst hub.InstrumentView
	if err := json.NewDecoder(w.Body).Decode(&inst); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if inst.Symbol != "AAPL" || inst.Exchange != "NASDAQ" {
		t.Errorf("instrument = %+v", inst)
	}
}

func TestGetInstrument_UnknownIs404(t *testing.T) {
	w := doGet(t, testServer().Router(), "/api/v1/reference/instruments/ZZZZ")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetInstrument_LowercaseSymbolIs400(t *testing.T) {
	// The path pattern requires uppercase even though the provider lookup is
	// case-insensitive; shape validation runs first.
	w := doGet(t, testServer().Router(), "/api/v1/reference/instruments/aapl")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCorrelationIDEchoed(t *testing.T) {
	router := testServer().Router()

	req := httptest.NewRequest("GET", "/api/v1/clients/CLIENT-98765/accounts", nil)
	req.Header.Set(DefaultCorrelationHeader, "trace-me-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(DefaultCorrelationHeader); got != "trace-me-123" {
		t.Errorf("correlation header = %q, want trace-me-123", got)
	}
}

func TestCorrelationIDGeneratedAndInProblemBody(t *testing.T) {
	router := testServer().Router()

	req := httptest.NewRequest("GET", "/api/v1/accounts/ACC-99999/portfolio", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get(DefaultCorrelationHeader)
	if header == "" {
		t.Fatal("expected a generated correlation id header")
	}
	p := decodeProblem(t, w)
	if p.CorrelationID != header {
		t.Errorf("problem correlationId = %q, header = %q", p.CorrelationID, header)
	}
}

func TestPanicYieldsInternalErrorProblem(t *testing.T) {
	// A panic reaching the boundary must surface as the generic internal
	// error body, not a bare 500.
	handler := correlationMiddleware("")(recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("pricing cache corrupted")
	})))

	req := httptest.NewRequest("GET", "/api/v1/accounts/ACC-12345/portfolio", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	p := decodeProblem(t, w)
	if p.ErrorCode != "INTERNAL_ERROR" {
		t.Errorf("errorCode = %q", p.ErrorCode)
	}
	if p.Detail != "An unexpected error occurred" {
		t.Errorf("panic cause leaked into detail: %q", p.Detail)
	}
	if p.CorrelationID == "" {
		t.Error("expected a correlation id in the problem body")
	}
}

func TestCustomCorrelationHeader(t *testing.T) {
	oms := provider.NewSeededOMS()
	md := provider.NewSeededMarketData(decimal.RequireFromString("100.00"))
	srv := NewServer(
		hub.NewAccountService(oms),
		hub.NewPortfolioService(oms, md),
		hub.NewReferenceDataService(md),
	).WithCorrelationHeader("X-Request-Trace")
	router := srv.Router()

	// Passthrough and echo on the configured header.
	req := httptest.NewRequest("GET", "/api/v1/clients/CLIENT-98765/accounts", nil)
	req.Header.Set("X-Request-Trace", "trace-xyz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Trace"); got != "trace-xyz" {
		t.Errorf("correlation header = %q, want trace-xyz", got)
	}

	// Preflight must allow browser clients to send the configured header.
	pre := httptest.NewRequest("OPTIONS", "/api/v1/clients/CLIENT-98765/accounts", nil)
	pre.Header.Set("Origin", "https://app.example.com")
	pre.Header.Set("Access-Control-Request-Method", "GET")
	pre.Header.Set("Access-Control-Request-Headers", "X-Request-Trace")
	pw := httptest.NewRecorder()
	router.ServeHTTP(pw, pre)
	if allowed := pw.Header().Get("Access-Control-Allow-Headers"); allowed == "" {
		t.Errorf("preflight did not allow the configured correlation header, got %q", allowed)
	}
}

func TestWriteMethodsAre405(t *testing.T) {
	router := testServer().Router()

	methods := []string{"POST", "PUT", "DELETE", "PATCH"}
	paths := []string{
		"/api/v1/clients/CLIENT-98765/accounts",
		"/api/v1/accounts/ACC-12345/portfolio",
		"/api/v1/reference/instruments/AAPL",
	}

	for _, method := range methods {
		for _, path := range paths {
			req := httptest.NewRequest(method, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("%s %s: expected 405, got %d", method, path, w.Code)
			}
		}
	}
}

func TestRouterHasCorrectGETRoutes(t *testing.T) {
	router := testServer().Router()

	paths := []string{
		"/health",
		"/api/v1/clients/CLIENT-98765/accounts",
		"/api/v1/accounts/ACC-12345/portfolio",
		"/api/v1/reference/instruments/AAPL",
	}

	for _, path := range paths {
		w := doGet(t, router, path)
		if w.Code == http.StatusNotFound {
			t.Errorf("GET %s: got 404, route not registered", path)
		}
		if w.Code == http.StatusMethodNotAllowed {
			t.Errorf("GET %s: got 405, GET should be allowed", path)
		}
	}
}
