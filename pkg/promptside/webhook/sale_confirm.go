package webhook

// SaleConfirm is the action-specific payload of a sale_confirm event.
// SaleID identifies the confirmed sale in the core API; the customer fields
// mirror what was recorded on the sale at confirmation time.
type SaleConfirm struct {
	SaleID                 int64  `json:"saleId"`
	EventID                int64  `json:"eventId"`
	EventName              string `json:"eventName"`
	SessionID              int64  `json:"sessionId"`
	CustomerFirstName      string `json:"customerFirstName"`
	CustomerSurname        string `json:"customerSurname"`
	CustomerOrgName        string `json:"customerOrgName"`
	CustomerEmailAddress   string `json:"customerEmailAddress"`
	CustomerPhone          string `json:"customerPhone"`
	CustomerMarketingOptIn bool   `json:"customerMarketingOptIn"`
}
