package models

import (
	"fmt"
	"strings"
)

// default placeholder for absent contact fields
const NotAvailable = "N/A"

// issue kind that selects the single service-desk request variant
const IssueKindSupport = "support"

// RoutingMetadata governs which provisioning variant runs for an order.
// All fields are optional; missing values fall back to configured defaults.
type RoutingMetadata struct {
	WorkspaceProjectKey string
	ServiceDeskKey      string
	ServiceDeskID       string
	IssueKind           string
	Summary             string
	DurationDays        int
}

// OrderEvent is the canonical view of a completed checkout. It is built once
// per notification and never mutated afterwards.
type OrderEvent struct {
	CustomerEmail        string
	CustomerName         string
	CustomerPhone        string
	CustomerAddressLines []string
	AmountMinorUnits     int64
	Currency             string
	Routing              RoutingMetadata
}

// CustomerSnapshot is the view of an OrderEvent consumed by the description
// builder: contact fields plus pre-formatted amount and postal address.
type CustomerSnapshot struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Amount  string
}

// NewCustomerSnapshot derives a snapshot from an order event. The amount is
// rendered as "<units>.<cents> <CURRENCY>" and the address as a comma-joined
// list of its non-empty components.
func NewCustomerSnapshot(ev *OrderEvent) CustomerSnapshot {
	address := NotAvailable
	if len(ev.CustomerAddressLines) > 0 {
		address = strings.Join(ev.CustomerAddressLines, ", ")
	}

	return CustomerSnapshot{
		Name:    ev.CustomerName,
		Email:   ev.CustomerEmail,
		Phone:   ev.CustomerPhone,
		Address: address,
		Amount:  fmt.Sprintf("%.2f %s", float64(ev.AmountMinorUnits)/100, strings.ToUpper(ev.Currency)),
	}
}
