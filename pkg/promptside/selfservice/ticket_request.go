package selfservice

import "encoding/json"

// TicketDescriptor selects one ticket to reserve.
type TicketDescriptor struct {
	TicketTypeID     int64 `json:"ticketTypeId"`
	SessionSectionID int64 `json:"sessionSectionId"`
}

// TicketRequest asks the API to reserve tickets as a new pending sale.
type TicketRequest struct {
	SessionID    int64              `json:"sessionId"`
	DiscountCode string             `json:"discountCode"`
	Tickets      []TicketDescriptor `json:"tickets"`
}

// Serialize renders the request body for sale creation.
func (r *TicketRequest) Serialize() ([]byte, error) {
	tickets := r.Tickets
	if tickets == nil {
		tickets = []TicketDescriptor{}
	}

	payload := struct {
		SessionID    int64              `json:"sessionId"`
		DiscountCode *string            `json:"discountCode"`
		Tickets      []TicketDescriptor `json:"tickets"`
	}{
		SessionID: r.SessionID,
		Tickets:   tickets,
	}
	if r.DiscountCode != "" {
		payload.DiscountCode = &r.DiscountCode
	}

	return json.Marshal(payload)
}
