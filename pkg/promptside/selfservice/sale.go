// Package selfservice models the Promptside self-service API: the customer
// view of a sale, from ticket reservation through payment.
package selfservice

import (
	"encoding/json"

	"github.com/promptside/hooklistener/pkg/halx"
	"github.com/promptside/hooklistener/pkg/promptside/core"
)

// SaleItem is a line of the customer view. Unlike the core API, the
// self-service API inlines items rather than linking them.
type SaleItem struct {
	Type        core.SaleItemType `json:"type"`
	Description string            `json:"description"`
	Quantity    int64             `json:"quantity"`
	UnitAmount  string            `json:"unitAmount"`
	NetAmount   string            `json:"netAmount"`
	TotalAmount string            `json:"totalAmount"`
}

// SaleAdjustment is an inlined tax, fee or discount.
type SaleAdjustment struct {
	Type        core.SaleAdjustmentType `json:"type"`
	Amount      string                  `json:"amount"`
	Description string                  `json:"description"`
}

// TicketInfo is the customer-editable view of one reserved ticket.
type TicketInfo struct {
	ID                  int64  `json:"id"`
	Type                string `json:"type"`
	SessionID           int64  `json:"sessionId"`
	SectionID           int64  `json:"sectionId"`
	Price               string `json:"price"`
	Voided              bool   `json:"voided"`
	FirstName           string `json:"firstName"`
	Surname             string `json:"surname"`
	EmailAddress        string `json:"emailAddress"`
	OrgName             string `json:"orgName"`
	Phone               string `json:"phone"`
	SpecialRequirements string `json:"specialRequirements"`
}

// Sale is the customer view of a sale.
type Sale struct {
	halx.Resource `json:"-"`

	ID                  int64              `json:"id"`
	UUID                string             `json:"uuid"`
	CreateDate          halx.Time          `json:"createDate"`
	ReserveUntilDate    halx.Time          `json:"reserveUntilDate"`
	CancelDate          halx.Time          `json:"cancelDate"`
	PayDate             halx.Time          `json:"payDate"`
	RefundDate          halx.Time          `json:"refundDate"`
	ProcessDate         halx.Time          `json:"processDate"`
	Items               []SaleItem         `json:"items"`
	NetPrice            string             `json:"netPrice"`
	Adjustments         []SaleAdjustment   `json:"adjustments"`
	TotalPrice          string             `json:"totalPrice"`
	TotalTicketQuantity int64              `json:"totalTicketQuantity"`
	PaidAmount          string             `json:"paidAmount"`
	CurrencyCode        string             `json:"currencyCode"`
	PaymentMethod       string             `json:"paymentMethod"`
	ReceiptNumber       string             `json:"receiptNumber"`
	PaymentAttempts     int64              `json:"paymentAttempts"`
	PaymentFailureCode  string             `json:"paymentFailureCode"`
	PaymentFailureMsg   string             `json:"paymentFailureMessage"`
	Status              core.SaleStatus    `json:"status"`
	PaymentStatus       core.PaymentStatus `json:"paymentStatus"`
	Customer            *core.Customer     `json:"customer"`
	Tickets             []TicketInfo       `json:"tickets"`
	LastUpdateDate      halx.Time          `json:"lastUpdateDate"`
}

// NewSale builds a customer-view Sale from a response body.
func NewSale(data []byte, c halx.Client) (*Sale, error) {
	s := &Sale{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if err := s.Bind(data, c); err != nil {
		return nil, err
	}
	return s, nil
}

// Serialize renders the sale as an update payload. Only the customer and
// ticket holder details are writable; relation maps and read-only fields
// never appear in the output.
func (s *Sale) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		ID       int64          `json:"id"`
		Customer *core.Customer `json:"customer"`
		Tickets  []TicketInfo   `json:"tickets"`
	}{
		ID:       s.ID,
		Customer: s.Customer,
		Tickets:  s.Tickets,
	})
}
