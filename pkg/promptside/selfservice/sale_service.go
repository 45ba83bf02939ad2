package selfservice

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/promptside/hooklistener/pkg/promptside"
)

var jsonHeaders = http.Header{
	"Accept":       {"application/json"},
	"Content-Type": {"application/json"},
}

// SaleService exposes the self-service API's sale operations.
type SaleService struct {
	client *promptside.Client
}

// NewSaleService builds a SaleService on the given client.
func NewSaleService(client *promptside.Client) *SaleService {
	return &SaleService{client: client}
}

// GetSale retrieves the customer view of a sale by its UUID.
func (s *SaleService) GetSale(ctx context.Context, uuid string) (*Sale, error) {
	resp, err := s.client.Do(ctx, promptside.Request{
		URL: "/self-service/v1/sales/" + uuid,
	})
	if err != nil {
		return nil, err
	}
	return NewSale(resp.Body, s.client)
}

// CreateSale creates a new pending sale, temporarily reserving tickets.
func (s *SaleService) CreateSale(ctx context.Context, request *TicketRequest) (*Sale, error) {
	body, err := request.Serialize()
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, promptside.Request{
		Method: http.MethodPost,
		URL:    "/self-service/v1/sales",
		Body:   body,
		Header: jsonHeaders,
	})
	if err != nil {
		return nil, err
	}
	return NewSale(resp.Body, s.client)
}

// SaveSale updates the customer and ticket holder details of a pending sale.
func (s *SaleService) SaveSale(ctx context.Context, sale *Sale) (*Sale, error) {
	body, err := sale.Serialize()
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, promptside.Request{
		Method: http.MethodPut,
		URL:    "/self-service/v1/sales/" + sale.UUID,
		Body:   body,
		Header: jsonHeaders,
	})
	if err != nil {
		return nil, err
	}
	return NewSale(resp.Body, s.client)
}

// CommitSale finalises a pending sale and submits it for payment processing
// when a payment token is supplied.
func (s *SaleService) CommitSale(ctx context.Context, uuid, paymentToken string) (*Sale, error) {
	payload := map[string]string{}
	if paymentToken != "" {
		payload["paymentToken"] = paymentToken
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, promptside.Request{
		Method: http.MethodPost,
		URL:    "/self-service/v1/sales/" + uuid + "/commit",
		Body:   body,
		Header: jsonHeaders,
	})
	if err != nil {
		return nil, err
	}
	return NewSale(resp.Body, s.client)
}

// CancelSale cancels a pending sale.
func (s *SaleService) CancelSale(ctx context.Context, uuid string) error {
	_, err := s.client.Do(ctx, promptside.Request{
		Method: http.MethodDelete,
		URL:    "/self-service/v1/sales/" + uuid,
	})
	return err
}
