package core

import (
	"encoding/json"

	"github.com/promptside/hooklistener/pkg/halx"
)

// SaleAdjustmentType discriminates adjustment kinds.
type SaleAdjustmentType string

const (
	AdjustmentTax      SaleAdjustmentType = "tax"
	AdjustmentFee      SaleAdjustmentType = "fee"
	AdjustmentDiscount SaleAdjustmentType = "disc"
)

// SaleAdjustment is a tax, fee or discount applied to a sale.
type SaleAdjustment struct {
	halx.Resource `json:"-"`

	DisplayOrder int64              `json:"displayOrder"`
	Type         SaleAdjustmentType `json:"type"`
	Amount       string             `json:"amount"`
	Description  string             `json:"description"`
}

// NewSaleAdjustment builds a SaleAdjustment from a response body.
func NewSaleAdjustment(data []byte, c halx.Client) (*SaleAdjustment, error) {
	adj := &SaleAdjustment{}
	if err := json.Unmarshal(data, adj); err != nil {
		return nil, err
	}
	if err := adj.Bind(data, c); err != nil {
		return nil, err
	}
	return adj, nil
}
