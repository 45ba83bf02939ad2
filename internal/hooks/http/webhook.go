package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/promptside/hooklistener/internal/hooks/service"
	"github.com/promptside/hooklistener/pkg/httpx"
	"github.com/promptside/hooklistener/pkg/promptside/webhook"
	"github.com/promptside/hooklistener/pkg/slogx"
)

// maxWebhookBody bounds the request body read. Webhook payloads are small
// JWTs, so anything past this is garbage.
const maxWebhookBody = 64 * 1024

// WebhookHandler receives platform webhook deliveries. The whole request
// body is a signed JWT; a delivery that fails verification gets a 400 and is
// never processed. Actions without a registered handler are acknowledged
// with "Ignored" so the platform stops retrying them.
type WebhookHandler struct {
	Verifier    *webhook.Verifier
	SaleConfirm *service.SaleConfirmService
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httpx.WriteText(w, http.StatusBadRequest, "Bad request")
		return
	}

	ev, err := h.Verifier.Verify(string(body))
	if err != nil {
		l.Warn("webhook verification failed", "error", err)
		httpx.WriteText(w, http.StatusBadRequest, "Bad request")
		return
	}

	switch ev.Action {
	case webhook.ActionSaleConfirm:
		err = h.SaleConfirm.Handle(ctx, ev)
		if errors.Is(err, service.ErrDuplicateDelivery) {
			httpx.WriteText(w, http.StatusOK, "Ignored")
			return
		}
		if err != nil {
			l.Error("sale_confirm processing failed", "uuid", ev.UUID, "error", err)
			httpx.WriteText(w, http.StatusInternalServerError, "Internal error")
			return
		}
		httpx.WriteText(w, http.StatusOK, "OK")

	default:
		l.Info("ignoring webhook action", "action", ev.Action, "uuid", ev.UUID)
		httpx.WriteText(w, http.StatusOK, "Ignored")
	}
}
