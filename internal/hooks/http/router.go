package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/promptside/hooklistener/internal/hooks/service"
	"github.com/promptside/hooklistener/internal/hooks/store"
	"github.com/promptside/hooklistener/pkg/httpx"
	"github.com/promptside/hooklistener/pkg/promptside"
	"github.com/promptside/hooklistener/pkg/promptside/webhook"
	"github.com/promptside/hooklistener/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     *webhook.Verifier
	client       *promptside.Client
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	SaleConfirmService *service.SaleConfirmService
}

func NewRouter(
	verifier *webhook.Verifier,
	client *promptside.Client,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		client:       client,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	webhookHandler := &WebhookHandler{
		Verifier:    r.verifier,
		SaleConfirm: r.SaleConfirmService,
	}

	r.Mux.Handle("POST /hook",
		httpx.Chain(webhookHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.client))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
