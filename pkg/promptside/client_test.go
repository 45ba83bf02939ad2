package promptside_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/promptside/hooklistener/pkg/promptside"
	"github.com/stretchr/testify/require"
)

// newAPIClient points both the API base and token endpoint at srv.
func newAPIClient(srv *httptest.Server) *promptside.Client {
	c := promptside.New(promptside.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})
	c.BaseURL = srv.URL
	c.TokenURL = srv.URL + "/oauth2/v1/token"
	return c
}

func TestDoInjectsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newAPIClient(srv)
	c.SetBearerToken("tok-abc")

	_, err := c.Do(context.Background(), promptside.Request{URL: "/core/v1/sales/1"})
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestDoReauthenticatesOnceOnChallenge(t *testing.T) {
	var apiCalls, tokenCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/v1/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "fresh-token"}`))
	})
	mux.HandleFunc("/core/v1/sales/1", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id": 1}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newAPIClient(srv)
	c.SetBearerToken("stale-token")

	resp, err := c.Do(context.Background(), promptside.Request{URL: "/core/v1/sales/1"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"id": 1}`, string(resp.Body))

	require.EqualValues(t, 2, apiCalls.Load(), "original call plus exactly one replay")
	require.EqualValues(t, 1, tokenCalls.Load(), "exactly one re-authentication")
}

func TestDoRetriedFailureIsFinal(t *testing.T) {
	var apiCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/v1/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "fresh-token"}`))
	})
	mux.HandleFunc("/core/v1/sales/1", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newAPIClient(srv)
	c.SetBearerToken("stale-token")

	_, err := c.Do(context.Background(), promptside.Request{URL: "/core/v1/sales/1"})
	require.Error(t, err)
	require.EqualValues(t, 2, apiCalls.Load(), "no second retry after the replay fails")

	var apiErr *promptside.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestDoUnauthenticated401IsNotRetried(t *testing.T) {
	var apiCalls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		w.Header().Set("WWW-Authenticate", `Bearer`)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newAPIClient(srv)
	// No token held: the 401 cannot be a token expiry

	_, err := c.Do(context.Background(), promptside.Request{URL: "/core/v1/sales/1"})
	require.Error(t, err)
	require.EqualValues(t, 1, apiCalls.Load())
}

func TestDo401WithoutChallengeIsNotRetried(t *testing.T) {
	var apiCalls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newAPIClient(srv)
	c.SetBearerToken("some-token")

	_, err := c.Do(context.Background(), promptside.Request{URL: "/core/v1/sales/1"})
	require.Error(t, err)
	require.EqualValues(t, 1, apiCalls.Load())
}

func TestDoNormalizesProblemResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"type": "https://httpstatus.es/422",
			"title": "Unprocessable Entity",
			"status": 422,
			"detail": "Failed Validation",
			"validation_messages": {
				"emailAddress": {"notValid": "Email is invalid"}
			}
		}`))
	}))
	defer srv.Close()

	c := newAPIClient(srv)
	c.SetBearerToken("tok")

	_, err := c.Do(context.Background(), promptside.Request{URL: "/self-service/v1/sales"})

	var problemErr *promptside.ProblemError
	require.ErrorAs(t, err, &problemErr)
	require.Equal(t, http.StatusUnprocessableEntity, problemErr.StatusCode)
	require.Equal(t, "Email is invalid", problemErr.Error())
	require.True(t, problemErr.Problem.HasValidationErrors())
}

func TestDoNonProblemErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := newAPIClient(srv)
	c.SetBearerToken("tok")

	_, err := c.Do(context.Background(), promptside.Request{URL: "/core/v1/sales/1"})

	var apiErr *promptside.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Contains(t, string(apiErr.Body), "bad gateway")
}

func TestDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newAPIClient(srv)
	_, err := c.Do(context.Background(), promptside.Request{URL: "/core/v1/sales/1"})

	var transportErr *promptside.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.MethodGet, transportErr.Method)
}

func TestDoAbsoluteURLPassthrough(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newAPIClient(srv)
	c.BaseURL = "https://unreachable.invalid"
	c.SetBearerToken("tok")

	// Absolute link hrefs bypass BaseURL
	_, err := c.Do(context.Background(), promptside.Request{URL: srv.URL + "/core/v1/sales/7"})
	require.NoError(t, err)
	require.Equal(t, "/core/v1/sales/7", gotPath)
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 3}`))
	}))
	defer srv.Close()

	c := newAPIClient(srv)
	c.SetBearerToken("tok")

	body, err := c.GetJSON(context.Background(), "/core/v1/sales/3")
	require.NoError(t, err)
	require.JSONEq(t, `{"id": 3}`, string(body))
}
