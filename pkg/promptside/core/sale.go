// Package core models the Promptside core API: the organiser-facing view of
// sales, sale items, adjustments and tickets.
package core

import (
	"context"
	"encoding/json"

	"github.com/promptside/hooklistener/pkg/halx"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SalePending    SaleStatus = "pending"
	SaleProcessing SaleStatus = "processing"
	SaleConfirmed  SaleStatus = "confirmed"
	SaleCancelled  SaleStatus = "cancelled"
)

// PaymentStatus is the payment state of a sale.
type PaymentStatus string

const (
	PaymentNotApplicable PaymentStatus = "notApplicable"
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartial       PaymentStatus = "partial"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
)

// Customer is the purchaser recorded against a sale.
type Customer struct {
	FirstName      string `json:"firstName"`
	Surname        string `json:"surname"`
	OrgName        string `json:"orgName"`
	EmailAddress   string `json:"emailAddress"`
	Phone          string `json:"phone"`
	MarketingOptIn bool   `json:"marketingOptIn"`
}

// Sale is an organiser-facing sale. Monetary amounts are decimal strings in
// the sale's currency. The items and adjustments relations resolve lazily
// through the owning client unless the response embedded them.
type Sale struct {
	halx.Resource `json:"-"`

	ID                  int64         `json:"id"`
	UUID                string        `json:"uuid"`
	LiveMode            bool          `json:"liveMode"`
	CreateDate          halx.Time     `json:"createDate"`
	ReserveUntilDate    halx.Time     `json:"reserveUntilDate"`
	CancelDate          halx.Time     `json:"cancelDate"`
	PayDate             halx.Time     `json:"payDate"`
	RefundDate          halx.Time     `json:"refundDate"`
	ProcessDate         halx.Time     `json:"processDate"`
	NetPrice            string        `json:"netPrice"`
	TotalPrice          string        `json:"totalPrice"`
	TotalTicketQuantity int64         `json:"totalTicketQuantity"`
	PaidAmount          string        `json:"paidAmount"`
	NetCommission       string        `json:"netCommission"`
	TotalCommission     string        `json:"totalCommission"`
	CurrencyCode        string        `json:"currencyCode"`
	PaymentMethod       string        `json:"paymentMethod"`
	ReceiptNumber       string        `json:"receiptNumber"`
	PaymentAttempts     int64         `json:"paymentAttempts"`
	PaymentFailureCode  string        `json:"paymentFailureCode"`
	PaymentFailureMsg   string        `json:"paymentFailureMessage"`
	Status              SaleStatus    `json:"status"`
	PaymentStatus       PaymentStatus `json:"paymentStatus"`
	Customer            *Customer     `json:"customer"`
	LastUpdateDate      halx.Time     `json:"lastUpdateDate"`
}

// NewSale builds a Sale from a response body and binds its relations to the
// given client for lazy resolution.
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

// Items returns the sale's line items, fetching them through the owning
// client only when they were not embedded. The result is memoized on the
// sale instance.
func (s *Sale) Items(ctx context.Context) ([]*SaleItem, error) {
	return halx.Memoize(&s.Resource, "items", func() ([]*SaleItem, error) {
		return halx.ResolveMany(ctx, &s.Resource, "items", NewSaleItem)
	})
}

// SetItems primes the memoized items, e.g. with locally constructed values.
func (s *Sale) SetItems(items []*SaleItem) {
	s.Prime("items", items)
}

// Adjustments returns the sale's taxes, fees and discounts, memoized.
func (s *Sale) Adjustments(ctx context.Context) ([]*SaleAdjustment, error) {
	return halx.Memoize(&s.Resource, "adjustments", func() ([]*SaleAdjustment, error) {
		return halx.ResolveMany(ctx, &s.Resource, "adjustments", NewSaleAdjustment)
	})
}

// SetAdjustments primes the memoized adjustments.
func (s *Sale) SetAdjustments(adjustments []*SaleAdjustment) {
	s.Prime("adjustments", adjustments)
}
