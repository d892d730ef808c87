package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/deskhook/deskhook/internal/models"
	"github.com/stripe/stripe-go/v82"
)

// metadata keys read from the checkout session
const (
	metaProjectKey     = "project_key"
	metaServiceDeskKey = "service_desk_key"
	metaServiceDeskID  = "service_desk_id"
	metaIssueKind      = "issue_kind"
	metaSummary        = "summary"
	metaDurationDays   = "duration_days"
)

const defaultDurationDays = 5

// Normalize extracts a canonical OrderEvent from the data object of a
// completed checkout event. Contact fields are defensively defaulted; the
// only failure mode is a payload missing the customer object entirely.
func Normalize(raw json.RawMessage) (*models.OrderEvent, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedEvent, err)
	}

	details := session.CustomerDetails
	if details == nil {
		return nil, fmt.Errorf("%w: missing customer_details", models.ErrMalformedEvent)
	}

	ev := models.OrderEvent{
		CustomerEmail:    details.Email,
		CustomerName:     orNotAvailable(details.Name),
		CustomerPhone:    orNotAvailable(details.Phone),
		AmountMinorUnits: session.AmountTotal,
		Currency:         string(session.Currency),
		Routing:          routingFrom(session.Metadata),
	}

	if addr := details.Address; addr != nil {
		ev.CustomerAddressLines = addressLines(addr)
	}

	return &ev, nil
}

func routingFrom(meta map[string]string) models.RoutingMetadata {
	r := models.RoutingMetadata{
		WorkspaceProjectKey: strings.ToUpper(meta[metaProjectKey]),
		ServiceDeskKey:      strings.ToUpper(meta[metaServiceDeskKey]),
		ServiceDeskID:       meta[metaServiceDeskID],
		IssueKind:           meta[metaIssueKind],
		Summary:             meta[metaSummary],
		DurationDays:        defaultDurationDays,
	}

	if days, err := strconv.Atoi(meta[metaDurationDays]); err == nil && days >= 0 {
		r.DurationDays = days
	}

	return r
}

// addressLines keeps the non-empty address components in postal order.
// Missing components are dropped, not defaulted.
func addressLines(addr *stripe.Address) []string {
	var lines []string
	for _, part := range []string{addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country} {
		if part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}

func orNotAvailable(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}
