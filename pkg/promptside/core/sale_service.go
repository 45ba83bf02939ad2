package core

import (
	"context"
	"strconv"

	"github.com/promptside/hooklistener/pkg/promptside"
)

// SaleService exposes the core API's sale operations.
type SaleService struct {
	client *promptside.Client
}

// NewSaleService builds a SaleService on the given client.
func NewSaleService(client *promptside.Client) *SaleService {
	return &SaleService{client: client}
}

// GetSale retrieves a sale by its numeric id.
func (s *SaleService) GetSale(ctx context.Context, id int64) (*Sale, error) {
	resp, err := s.client.Do(ctx, promptside.Request{
		URL: "/core/v1/sales/" + strconv.FormatInt(id, 10),
	})
	if err != nil {
		return nil, err
	}
	return NewSale(resp.Body, s.client)
}
