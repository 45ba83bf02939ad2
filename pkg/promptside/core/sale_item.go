package core

import (
	"context"
	"encoding/json"

	"github.com/promptside/hooklistener/pkg/halx"
)

// SaleItemType discriminates line item kinds. Tickets are the only kind the
// API currently emits.
type SaleItemType string

const SaleItemTickets SaleItemType = "tix"

// SaleItem is one line of a sale. Amounts are decimal strings.
type SaleItem struct {
	halx.Resource `json:"-"`

	DisplayOrder int64        `json:"displayOrder"`
	Type         SaleItemType `json:"type"`
	Description  string       `json:"description"`
	Quantity     int64        `json:"quantity"`
	UnitAmount   string       `json:"unitAmount"`
	NetAmount    string       `json:"netAmount"`
	TotalAmount  string       `json:"totalAmount"`
}

// NewSaleItem builds a SaleItem from a response body.
func NewSaleItem(data []byte, c halx.Client) (*SaleItem, error) {
	item := &SaleItem{}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, err
	}
	if err := item.Bind(data, c); err != nil {
		return nil, err
	}
	return item, nil
}

// Tickets returns the item's allocated tickets, memoized per instance.
func (i *SaleItem) Tickets(ctx context.Context) ([]*Ticket, error) {
	return halx.Memoize(&i.Resource, "tickets", func() ([]*Ticket, error) {
		return halx.ResolveMany(ctx, &i.Resource, "tickets", NewTicket)
	})
}

// SetTickets primes the memoized tickets.
func (i *SaleItem) SetTickets(tickets []*Ticket) {
	i.Prime("tickets", tickets)
}
