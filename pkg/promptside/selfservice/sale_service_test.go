package selfservice_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptside/hooklistener/pkg/promptside"
	"github.com/promptside/hooklistener/pkg/promptside/core"
	"github.com/promptside/hooklistener/pkg/promptside/selfservice"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   []byte
}

func newServiceFixture(t *testing.T, respond func(r recordedRequest, w http.ResponseWriter)) (*selfservice.SaleService, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec := recordedRequest{method: r.Method, path: r.URL.Path, body: body}
		requests = append(requests, rec)
		respond(rec, w)
	}))
	t.Cleanup(srv.Close)

	client := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b"})
	client.BaseURL = srv.URL
	client.SetBearerToken("tok")

	return selfservice.NewSaleService(client), &requests
}

func respondWithSale(_ recordedRequest, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/hal+json")
	_, _ = w.Write([]byte(customerSaleBody))
}

func TestServiceGetSale(t *testing.T) {
	svc, requests := newServiceFixture(t, respondWithSale)

	sale, err := svc.GetSale(context.Background(), "uuid-1")
	require.NoError(t, err)
	require.EqualValues(t, 42, sale.ID)

	require.Len(t, *requests, 1)
	require.Equal(t, http.MethodGet, (*requests)[0].method)
	require.Equal(t, "/self-service/v1/sales/uuid-1", (*requests)[0].path)
}

func TestServiceCreateSale(t *testing.T) {
	svc, requests := newServiceFixture(t, respondWithSale)

	sale, err := svc.CreateSale(context.Background(), &selfservice.TicketRequest{
		SessionID: 5,
		Tickets:   []selfservice.TicketDescriptor{{TicketTypeID: 1, SessionSectionID: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, core.SalePending, sale.Status)

	require.Len(t, *requests, 1)
	require.Equal(t, http.MethodPost, (*requests)[0].method)
	require.Equal(t, "/self-service/v1/sales", (*requests)[0].path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal((*requests)[0].body, &sent))
	require.EqualValues(t, 5, sent["sessionId"])
}

func TestServiceSaveSale(t *testing.T) {
	svc, requests := newServiceFixture(t, respondWithSale)

	sale, err := selfservice.NewSale([]byte(customerSaleBody), nil)
	require.NoError(t, err)
	sale.Customer.Phone = "0400 000 000"

	_, err = svc.SaveSale(context.Background(), sale)
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, (*requests)[0].method)
	require.Equal(t, "/self-service/v1/sales/"+sale.UUID, (*requests)[0].path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal((*requests)[0].body, &sent))
	customer := sent["customer"].(map[string]any)
	require.Equal(t, "0400 000 000", customer["phone"])
}

func TestServiceCommitSale(t *testing.T) {
	t.Run("with payment token", func(t *testing.T) {
		svc, requests := newServiceFixture(t, respondWithSale)

		_, err := svc.CommitSale(context.Background(), "uuid-1", "pay-tok")
		require.NoError(t, err)

		require.Equal(t, http.MethodPost, (*requests)[0].method)
		require.Equal(t, "/self-service/v1/sales/uuid-1/commit", (*requests)[0].path)
		require.JSONEq(t, `{"paymentToken": "pay-tok"}`, string((*requests)[0].body))
	})

	t.Run("free sale omits token", func(t *testing.T) {
		svc, requests := newServiceFixture(t, respondWithSale)

		_, err := svc.CommitSale(context.Background(), "uuid-1", "")
		require.NoError(t, err)
		require.JSONEq(t, `{}`, string((*requests)[0].body))
	})
}

func TestServiceCancelSale(t *testing.T) {
	svc, requests := newServiceFixture(t, func(_ recordedRequest, w http.ResponseWriter) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, svc.CancelSale(context.Background(), "uuid-1"))
	require.Equal(t, http.MethodDelete, (*requests)[0].method)
	require.Equal(t, "/self-service/v1/sales/uuid-1", (*requests)[0].path)
}
