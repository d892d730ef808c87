package webhook

import (
	"io"
	"net/http"

	"github.com/deskhook/deskhook/internal/event"
	"github.com/deskhook/deskhook/internal/models"
	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

// Dispatcher accepts an order event for detached background provisioning.
type Dispatcher interface {
	Submit(ev *models.OrderEvent)
}

// stripe sends small envelopes; anything bigger is not ours
const maxBodyBytes = 64 << 10

// Handler receives signed payment events and hands completed checkouts to
// the dispatcher. Once the signature checks out the sender always gets a
// success acknowledgment; downstream failures are visible only in the logs.
type Handler struct {
	secret string
	disp   Dispatcher
	log    *zap.Logger
}

// NewHandler creates a webhook handler verifying against the endpoint
// secret.
func NewHandler(secret string, disp Dispatcher, log *zap.Logger) *Handler {
	return &Handler{
		secret: secret,
		disp:   disp,
		log:    log,
	}
}

// HandleStripeEvent verifies the event signature, ignores everything except
// completed checkouts, and schedules provisioning without awaiting it.
func (h *Handler) HandleStripeEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		ev, err := stripewebhook.ConstructEventWithOptions(body, r.Header.Get("Stripe-Signature"), h.secret,
			stripewebhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			h.log.Warn("webhook signature verification failed", zap.Error(err))
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}

		if ev.Type != stripe.EventTypeCheckoutSessionCompleted {
			h.log.Debug("ignoring event", zap.String("type", string(ev.Type)))
			w.WriteHeader(http.StatusOK)
			return
		}

		order, err := event.Normalize(ev.Data.Raw)
		if err != nil {
			// the sender is acknowledged regardless; a malformed payload
			// cannot be fixed by redelivery
			h.log.Error("malformed checkout event", zap.String("event_id", ev.ID), zap.Error(err))
			w.WriteHeader(http.StatusOK)
			return
		}

		h.disp.Submit(order)
		w.WriteHeader(http.StatusOK)
	}
}
