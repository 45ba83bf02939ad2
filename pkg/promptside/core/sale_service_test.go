package core_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptside/hooklistener/pkg/promptside"
	"github.com/promptside/hooklistener/pkg/promptside/core"
	"github.com/stretchr/testify/require"
)

func TestGetSale(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/hal+json")
		_, _ = w.Write([]byte(`{
			"id": 42,
			"totalPrice": "100.00",
			"status": "confirmed",
			"_links": {"self": {"href": "/core/v1/sales/42"}}
		}`))
	}))
	defer srv.Close()

	client := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b"})
	client.BaseURL = srv.URL
	client.SetBearerToken("tok")

	svc := core.NewSaleService(client)
	sale, err := svc.GetSale(context.Background(), 42)
	require.NoError(t, err)

	require.Equal(t, "/core/v1/sales/42", gotPath)
	require.Equal(t, "Bearer tok", gotAuth)
	require.EqualValues(t, 42, sale.ID)
	require.Equal(t, core.SaleConfirmed, sale.Status)
}

func TestGetSaleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title": "Not Found", "status": 404, "detail": "Sale does not exist"}`))
	}))
	defer srv.Close()

	client := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b"})
	client.BaseURL = srv.URL
	client.SetBearerToken("tok")

	svc := core.NewSaleService(client)
	_, err := svc.GetSale(context.Background(), 9999)

	var problemErr *promptside.ProblemError
	require.ErrorAs(t, err, &problemErr)
	require.Equal(t, http.StatusNotFound, problemErr.StatusCode)
	require.Equal(t, "Sale does not exist", problemErr.Error())
}
