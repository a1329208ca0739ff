package forwarder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDoRelaysSuccessVerbatim(t *testing.T) {
	var gotCookie, gotPath, gotQuery string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"id":"1","name":"Shoes","branch":"Main"}]`))
	}))
	defer backend.Close()

	f := New(backend.URL, time.Second, testLogger())
	res, envErr := f.Do(context.Background(), Route{Path: "category/"}, Request{
		Method: http.MethodGet,
		Query:  "page=2",
		Cookie: "session_token=abc",
	})

	require.Nil(t, envErr)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `[{"id":"1","name":"Shoes","branch":"Main"}]`, string(res.Body))
	assert.Equal(t, "session_token=abc", gotCookie)
	assert.Equal(t, "/category/", gotPath)
	assert.Equal(t, "page=2", gotQuery)
}

func TestDoExtractsDetailFromErrorBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"not found"}`))
	}))
	defer backend.Close()

	f := New(backend.URL, time.Second, testLogger())
	res, envErr := f.Do(context.Background(), Route{Path: "customers/"}.WithID("42"), Request{
		Method: http.MethodDelete,
	})

	require.Nil(t, res)
	require.NotNil(t, envErr)
	assert.Equal(t, "not found", envErr.Error)
	assert.Equal(t, http.StatusNotFound, envErr.Status)
}

func TestDoExtractsMessageWhenNoDetail(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"name already taken"}`))
	}))
	defer backend.Close()

	f := New(backend.URL, time.Second, testLogger())
	_, envErr := f.Do(context.Background(), Route{Path: "brand/"}, Request{Method: http.MethodPost})

	require.NotNil(t, envErr)
	assert.Equal(t, "name already taken", envErr.Error)
	assert.Equal(t, http.StatusBadRequest, envErr.Status)
}

func TestDoFallsBackToRawTextOnNonJSONError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error: stack trace goes here"))
	}))
	defer backend.Close()

	f := New(backend.URL, time.Second, testLogger())
	_, envErr := f.Do(context.Background(), Route{Path: "stock/viewstock"}, Request{Method: http.MethodGet})

	require.NotNil(t, envErr)
	assert.Equal(t, http.StatusInternalServerError, envErr.Status)
	assert.Equal(t, "Internal Server Error: stack trace goes here", envErr.Details)
	assert.NotEmpty(t, envErr.Error)
}

func TestDoClassifiesTimeout(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer backend.Close()

	f := New(backend.URL, time.Second, testLogger())
	_, envErr := f.Do(context.Background(), Route{Path: "stock/report", Timeout: 50 * time.Millisecond}, Request{
		Method: http.MethodPost,
	})

	require.NotNil(t, envErr)
	assert.Equal(t, http.StatusGatewayTimeout, envErr.Status)
	assert.Equal(t, TypeTimeout, envErr.Type)
}

func TestDoReportsUnreachableBackend(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	f := New(backend.URL, time.Second, testLogger())
	_, envErr := f.Do(context.Background(), Route{Path: "brand/"}, Request{Method: http.MethodGet})

	require.NotNil(t, envErr)
	assert.Equal(t, http.StatusBadGateway, envErr.Status)
	assert.Equal(t, "failed to reach backend", envErr.Error)
	assert.NotEmpty(t, envErr.Details)
}

func TestDoRemapsBodyFields(t *testing.T) {
	var gotBody map[string]any
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	route := Route{
		Path: "customerinvoice/",
		Remap: map[string]string{
			"customer":     "e_name",
			"total_amount": "e_amount",
		},
	}
	f := New(backend.URL, time.Second, testLogger())
	_, envErr := f.Do(context.Background(), route.WithID("7"), Request{
		Method: http.MethodPut,
		Body:   strings.NewReader(`{"customer":"Acme","total_amount":120.5,"note":"net 30"}`),
	})

	require.Nil(t, envErr)
	assert.Equal(t, "Acme", gotBody["e_name"])
	assert.Equal(t, 120.5, gotBody["e_amount"])
	assert.Equal(t, "net 30", gotBody["note"])
	assert.NotContains(t, gotBody, "customer")
	assert.NotContains(t, gotBody, "total_amount")
}

func TestDoMultipartPassesContentTypeThrough(t *testing.T) {
	var gotContentType string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	f := New(backend.URL, time.Second, testLogger())
	_, envErr := f.Do(context.Background(), Route{Path: "stock/report", Multipart: true}, Request{
		Method:      http.MethodPost,
		Body:        strings.NewReader("--boundary--"),
		ContentType: "multipart/form-data; boundary=boundary",
	})

	require.Nil(t, envErr)
	assert.Equal(t, "multipart/form-data; boundary=boundary", gotContentType)
}

func TestWithIDBuildsBackendPath(t *testing.T) {
	assert.Equal(t, "brand/9", Route{Path: "brand/"}.WithID("9").Path)
	assert.Equal(t, "vendors/viewvendor/3", Route{Path: "vendors/viewvendor"}.WithID("3").Path)
}

func TestNormalizeIgnoresNonStringDetail(t *testing.T) {
	env := Normalize(http.StatusBadRequest, []byte(`{"detail":{"field":"name"}}`))
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.NotEmpty(t, env.Error)
	assert.Contains(t, env.Details, "field")
}
