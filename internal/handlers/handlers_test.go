package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zija9452/dashboard-frontend-sub001/internal/backend"
	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
	"github.com/zija9452/dashboard-frontend-sub001/internal/handlers"
	"github.com/zija9452/dashboard-frontend-sub001/internal/middleware"
)

const testCookieName = "session_token"

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newGateway wires the browser-facing routes against the given backend URL,
// mirroring the wiring in cmd/main.go.
func newGateway(backendURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := testLogger()

	fwd := forwarder.New(backendURL, time.Second, logger)
	backendClient := backend.NewClient(backendURL, testCookieName, time.Second, logger)
	routes := handlers.NewRoutes(2 * time.Second)

	router := gin.New()
	api := router.Group("/api")

	authHandler := handlers.NewAuthHandler(backendClient, testCookieName, false, logger)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	guarded := api.Group("")
	guarded.Use(middleware.SessionGuard(testCookieName, logger))

	handlers.NewResourceHandler("Category", routes.Category, fwd, logger).Register(guarded.Group("/category"))
	handlers.NewResourceHandler("Customer", routes.Customers, fwd, logger).Register(guarded.Group("/customers"))

	stockHandler := handlers.NewStockHandler(routes, fwd, logger)
	guarded.POST("/stock/adjust", stockHandler.Adjust)
	guarded.POST("/stock/labels", stockHandler.Labels)

	invoiceHandler := handlers.NewInvoiceHandler(routes, fwd, logger)
	guarded.PUT("/invoices/customer/:id", invoiceHandler.CustomerUpdate)

	guarded.GET("/refunds", handlers.NewRefundHandler(logger).List)

	return router
}

func doRequest(router *gin.Engine, method, path, body string, withSession bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withSession {
		req.Header.Set("Cookie", testCookieName+"=abc")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCategoryListRelaysBackendPage(t *testing.T) {
	var gotCookie, gotPath string
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","name":"Shoes","branch":"Main"}]`))
	}))
	defer backendSrv.Close()

	w := doRequest(newGateway(backendSrv.URL), http.MethodGet, "/api/category", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"1","name":"Shoes","branch":"Main"}]`, w.Body.String())
	assert.Equal(t, "session_token=abc", gotCookie)
	assert.Equal(t, "/category/", gotPath)
}

func TestCustomerDeleteSurfacesBackendDetail(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/customers/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"not found"}`))
	}))
	defer backendSrv.Close()

	w := doRequest(newGateway(backendSrv.URL), http.MethodDelete, "/api/customers/42", "", true)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env forwarder.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "not found", env.Error)
	assert.Equal(t, http.StatusNotFound, env.Status)
}

func TestGuardedRoutesRequireSessionCookie(t *testing.T) {
	backendCalls := 0
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
	}))
	defer backendSrv.Close()

	w := doRequest(newGateway(backendSrv.URL), http.MethodGet, "/api/category", "", false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, backendCalls)
}

func TestAdjustRejectsOverdrawnDecreaseBeforeNetwork(t *testing.T) {
	backendCalls := 0
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
	}))
	defer backendSrv.Close()

	body := `[{"product_id":7,"product_name":"Cola 330ml","current_stock":4,"action":"decrease","quantity":10}]`
	w := doRequest(newGateway(backendSrv.URL), http.MethodPost, "/api/stock/adjust", body, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds current stock")
	assert.Equal(t, 0, backendCalls)
}

func TestAdjustRejectsDuplicateProducts(t *testing.T) {
	backendCalls := 0
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
	}))
	defer backendSrv.Close()

	body := `[
		{"product_id":7,"product_name":"Cola 330ml","current_stock":40,"action":"increase","quantity":2},
		{"product_id":7,"product_name":"Cola 330ml","current_stock":40,"action":"increase","quantity":3}
	]`
	w := doRequest(newGateway(backendSrv.URL), http.MethodPost, "/api/stock/adjust", body, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already in the adjustment list")
	assert.Equal(t, 0, backendCalls)
}

func TestAdjustForwardsBatchAndReportsCount(t *testing.T) {
	var gotBody []map[string]any
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/adjuststock", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"results":[{"ok":true},{"ok":true}]}`))
	}))
	defer backendSrv.Close()

	body := `[
		{"product_id":7,"product_name":"Cola 330ml","current_stock":40,"action":"decrease","quantity":4,"reason":"breakage"},
		{"product_id":9,"product_name":"Chips","current_stock":10,"action":"increase","quantity":6}
	]`
	w := doRequest(newGateway(backendSrv.URL), http.MethodPost, "/api/stock/adjust", body, true)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gotBody, 2)
	assert.Equal(t, "decrease", gotBody[0]["action"])

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["processed"])
	assert.Equal(t, "2 stock adjustments applied", resp["message"])
}

func TestCustomerInvoiceUpdateRemapsFields(t *testing.T) {
	var gotBody map[string]any
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customerinvoice/12", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{}`))
	}))
	defer backendSrv.Close()

	body := `{"customer":"Acme Retail","total_amount":310.5}`
	w := doRequest(newGateway(backendSrv.URL), http.MethodPut, "/api/invoices/customer/12", body, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Retail", gotBody["e_name"])
	assert.Equal(t, 310.5, gotBody["e_amount"])
	assert.NotContains(t, gotBody, "customer")
}

func TestLoginReEmitsBackendCookie(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/session-login", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: testCookieName, Value: "issued-by-backend"})
		w.Write([]byte(`{"user":"amira","role":"manager"}`))
	}))
	defer backendSrv.Close()

	body := `{"username":"amira","password":"pw","role":"manager"}`
	w := doRequest(newGateway(backendSrv.URL), http.MethodPost, "/api/auth/login", body, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"amira","role":"manager"}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, testCookieName, cookie.Name)
	assert.Equal(t, "issued-by-backend", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 24*60*60, cookie.MaxAge)
}

func TestLoginRelaysBackendRejection(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer backendSrv.Close()

	body := `{"username":"amira","password":"wrong","role":"manager"}`
	w := doRequest(newGateway(backendSrv.URL), http.MethodPost, "/api/auth/login", body, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestLogoutExpiresCookie(t *testing.T) {
	w := doRequest(newGateway("http://localhost:0"), http.MethodPost, "/api/auth/logout", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRefundListFiltersAndPaginates(t *testing.T) {
	router := newGateway("http://localhost:0")

	w := doRequest(router, http.MethodGet, "/api/refunds?page=1&page_size=5", "", true)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items      []map[string]any `json:"items"`
		TotalItems int              `json:"total_items"`
		TotalPages int              `json:"total_pages"`
		Page       int              `json:"page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 5)
	assert.Equal(t, 12, resp.TotalItems)
	assert.Equal(t, 3, resp.TotalPages)

	// A page past the end clamps to the last page instead of erroring.
	w = doRequest(router, http.MethodGet, "/api/refunds?page=99&page_size=5", "", true)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, resp.Page)
	assert.Len(t, resp.Items, 2)

	// Substring search over customer names.
	w = doRequest(router, http.MethodGet, "/api/refunds?search=acme", "", true)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalItems)
	for _, item := range resp.Items {
		assert.Equal(t, "Acme Retail", item["customer"])
	}
}

func TestLabelsRendersZPLDownload(t *testing.T) {
	body := `[{"product_name":"Cola 330ml","barcode":"4006381333931","price":"1.25","branch":"Main"}]`
	w := doRequest(newGateway("http://localhost:0"), http.MethodPost, "/api/stock/labels", body, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "labels.zpl")
	assert.Contains(t, w.Body.String(), "^XA")
	assert.Contains(t, w.Body.String(), "4006381333931")
}
