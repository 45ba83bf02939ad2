package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promptside/hooklistener/internal/hooks/store"
	"github.com/promptside/hooklistener/pkg/promptside/core"
	"github.com/promptside/hooklistener/pkg/promptside/webhook"
	"github.com/promptside/hooklistener/pkg/slogx"
)

// ErrDuplicateDelivery reports a webhook delivery whose UUID has already been
// processed. The platform retries deliveries until acknowledged, so replays
// are expected and should be acknowledged without reprocessing.
var ErrDuplicateDelivery = errors.New("duplicate webhook delivery")

// SaleConfirmService handles verified sale_confirm events: it records the
// delivery for dedupe, then fetches the full sale from the core API.
type SaleConfirmService struct {
	Sales *core.SaleService
	Store store.Store
}

// Handle processes a verified sale_confirm event. The event UUID is recorded
// before the sale is fetched, so a replayed delivery is rejected even if the
// earlier attempt is still in flight. If the fetch fails, the record is
// released again so the platform's retry of the same delivery is re-handled.
func (s *SaleConfirmService) Handle(ctx context.Context, ev *webhook.Event) error {
	l := slogx.FromContext(ctx)

	var payload webhook.SaleConfirm
	if err := ev.DecodeClaims(&payload); err != nil {
		return fmt.Errorf("decode sale_confirm claims: %w", err)
	}

	err := s.Store.Deliveries().Record(ctx, store.Delivery{
		UUID:       ev.UUID,
		Action:     string(ev.Action),
		ReceivedAt: time.Now().UTC(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		l.Info("webhook delivery replayed, ignoring", "uuid", ev.UUID)
		return ErrDuplicateDelivery
	}
	if err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}

	sale, err := s.Sales.GetSale(ctx, payload.SaleID)
	if err != nil {
		if delErr := s.Store.Deliveries().Delete(ctx, ev.UUID); delErr != nil {
			l.Error("failed to release delivery record, retry will be ignored",
				"uuid", ev.UUID, "error", delErr)
		}
		return fmt.Errorf("fetch sale %d: %w", payload.SaleID, err)
	}

	email := payload.CustomerEmailAddress
	if sale.Customer != nil && sale.Customer.EmailAddress != "" {
		email = sale.Customer.EmailAddress
	}

	l.Info("sale confirmed",
		"sale_id", sale.ID,
		"event_name", payload.EventName,
		"total_price", sale.TotalPrice,
		"currency", sale.CurrencyCode,
		"customer_email", email,
	)
	return nil
}
