package core

import (
	"encoding/json"

	"github.com/promptside/hooklistener/pkg/halx"
)

// TicketHolder is the attendee details recorded against a ticket.
type TicketHolder struct {
	FirstName              string    `json:"firstName"`
	Surname                string    `json:"surname"`
	OrgName                string    `json:"orgName"`
	EmailAddress           string    `json:"emailAddress"`
	Phone                  string    `json:"phone"`
	SpecialRequirements    string    `json:"specialRequirements"`
	MarketingOptIn         bool      `json:"marketingOptIn"`
	InvitationSentDate     halx.Time `json:"invitationSentDate"`
	InvitationResponseDate halx.Time `json:"invitationResponseDate"`
}

// Ticket is one allocated ticket. Price is a decimal string.
type Ticket struct {
	halx.Resource `json:"-"`

	ID             int64         `json:"id"`
	DisplayOrder   int64         `json:"displayOrder"`
	UUID           string        `json:"uuid"`
	Price          string        `json:"price"`
	AllocationDate halx.Time     `json:"allocationDate"`
	SentDate       halx.Time     `json:"sentDate"`
	CheckinDate    halx.Time     `json:"checkinDate"`
	Voided         bool          `json:"voided"`
	TicketHolder   *TicketHolder `json:"ticketHolder"`
}

// NewTicket builds a Ticket from a response body.
func NewTicket(data []byte, c halx.Client) (*Ticket, error) {
	t := &Ticket{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	if err := t.Bind(data, c); err != nil {
		return nil, err
	}
	return t, nil
}
