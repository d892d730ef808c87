package provision

import (
	"context"
	"strings"
	"time"

	"github.com/deskhook/deskhook/internal/models"
	"github.com/deskhook/deskhook/internal/records"
	"go.uber.org/zap"
)

// IdentityResolver establishes the customer's directory identity before any
// record is created.
type IdentityResolver interface {
	Resolve(ctx context.Context, email, displayName, serviceDeskID string) (models.IdentityResolution, error)
}

// RecordsClient creates one record and returns its key.
type RecordsClient interface {
	CreateRecord(ctx context.Context, rec records.CreateRecordRequest) (string, error)
}

const dateLayout = "2006-01-02"

// labels attached to support requests
const (
	labelSource           = "stripe"
	labelNewCustomer      = "New-Customer"
	labelExistingCustomer = "Existing-Customer"
)

// Defaults are the configured routing values used when the event metadata
// leaves them out.
type Defaults struct {
	WorkspaceProjectKey string
	ServiceDeskKey      string
	ServiceDeskID       string
	RequestTypeID       string
	IssueType           string
	ParentIssueType     string
}

// Provisioner runs the end-to-end sequence for one order: customer
// onboarding, reporter attribution, then the creation variant selected by
// the routing metadata. It is the only component that knows the overall
// order of calls and the failure policy.
type Provisioner struct {
	resolver IdentityResolver
	records  RecordsClient
	defaults Defaults
	now      func() time.Time
	log      *zap.Logger
}

// New creates a Provisioner.
func New(resolver IdentityResolver, rc RecordsClient, defaults Defaults, log *zap.Logger) *Provisioner {
	return &Provisioner{
		resolver: resolver,
		records:  rc,
		defaults: defaults,
		now:      time.Now,
		log:      log,
	}
}

// Provision runs the provisioning sequence for one order event. Any fatal
// error aborts the remaining steps; already-created records are not rolled
// back.
func (p *Provisioner) Provision(ctx context.Context, ev *models.OrderEvent) error {
	routing := p.effectiveRouting(ev.Routing)

	// onboarding runs only when a service desk is actually configured;
	// otherwise the run degrades to email attribution up front
	res := models.IdentityResolution{}
	if routing.ServiceDeskKey != "" && routing.ServiceDeskID != "" {
		resolved, err := p.resolver.Resolve(ctx, ev.CustomerEmail, ev.CustomerName, routing.ServiceDeskID)
		if err != nil {
			return err
		}
		res = resolved
	}

	reporter := models.ReporterFor(res, ev.CustomerEmail)

	start := p.now().UTC()
	startDate := start.Format(dateLayout)
	dueDate := start.AddDate(0, 0, routing.DurationDays).Format(dateLayout)

	description := records.BuildDescription(models.NewCustomerSnapshot(ev), startDate, dueDate)

	summary := routing.Summary
	if summary == "" {
		summary = ev.CustomerName
	}

	if strings.EqualFold(routing.IssueKind, models.IssueKindSupport) {
		return p.provisionSupport(ctx, routing, summary, description, startDate, dueDate, reporter, res)
	}
	return p.provisionWorkItem(ctx, routing, summary, description, startDate, dueDate, reporter)
}

// provisionSupport creates the single service-desk request of the support
// variant, labeled with the customer classification and the payment origin.
func (p *Provisioner) provisionSupport(ctx context.Context, routing models.RoutingMetadata, summary string,
	description *records.Document, startDate, dueDate string, reporter models.ReporterRef,
	res models.IdentityResolution) error {

	if routing.ServiceDeskID == "" {
		return &models.MissingRoutingKeyError{Key: "service_desk_id"}
	}
	if p.defaults.RequestTypeID == "" {
		return &models.MissingRoutingKeyError{Key: "request_type_id"}
	}

	customerLabel := labelExistingCustomer
	if res.IsNew {
		customerLabel = labelNewCustomer
	}

	key, err := p.records.CreateRecord(ctx, records.CreateRecordRequest{
		ServiceDeskID: routing.ServiceDeskID,
		RequestTypeID: p.defaults.RequestTypeID,
		Summary:       "Support Request for " + summary,
		Description:   description,
		StartDate:     startDate,
		DueDate:       dueDate,
		Labels:        []string{labelSource, customerLabel},
		Reporter:      reporter,
	})
	if err != nil {
		return err
	}

	p.log.Info("support request created",
		zap.String("key", key), zap.String("service_desk_id", routing.ServiceDeskID))
	return nil
}

// provisionWorkItem creates the parent grouping record and its child work
// item in the workspace project, then a customer-visible confirmation in the
// service desk when one is configured.
func (p *Provisioner) provisionWorkItem(ctx context.Context, routing models.RoutingMetadata, summary string,
	description *records.Document, startDate, dueDate string, reporter models.ReporterRef) error {

	if routing.WorkspaceProjectKey == "" {
		return &models.MissingRoutingKeyError{Key: "project_key"}
	}

	parentKey, err := p.records.CreateRecord(ctx, records.CreateRecordRequest{
		ProjectKey: routing.WorkspaceProjectKey,
		IssueType:  p.defaults.ParentIssueType,
		Summary:    "New Client",
	})
	if err != nil {
		return err
	}

	childKey, err := p.records.CreateRecord(ctx, records.CreateRecordRequest{
		ProjectKey:  routing.WorkspaceProjectKey,
		IssueType:   p.defaults.IssueType,
		Summary:     summary,
		Description: description,
		StartDate:   startDate,
		DueDate:     dueDate,
		Reporter:    reporter,
		ParentKey:   parentKey,
	})
	if err != nil {
		return err
	}

	p.log.Info("work item created",
		zap.String("parent", parentKey), zap.String("child", childKey),
		zap.String("project", routing.WorkspaceProjectKey))

	if routing.ServiceDeskID == "" || p.defaults.RequestTypeID == "" {
		return nil
	}

	confirmKey, err := p.records.CreateRecord(ctx, records.CreateRecordRequest{
		ServiceDeskID: routing.ServiceDeskID,
		RequestTypeID: p.defaults.RequestTypeID,
		Summary:       "Purchase Confirmation",
		Description:   records.BuildConfirmation(childKey),
		Reporter:      reporter,
	})
	if err != nil {
		return err
	}

	p.log.Info("confirmation request created", zap.String("key", confirmKey))
	return nil
}

// effectiveRouting overlays the event's routing metadata on the configured
// defaults.
func (p *Provisioner) effectiveRouting(routing models.RoutingMetadata) models.RoutingMetadata {
	if routing.WorkspaceProjectKey == "" {
		routing.WorkspaceProjectKey = p.defaults.WorkspaceProjectKey
	}
	if routing.ServiceDeskKey == "" {
		routing.ServiceDeskKey = p.defaults.ServiceDeskKey
	}
	if routing.ServiceDeskID == "" {
		routing.ServiceDeskID = p.defaults.ServiceDeskID
	}
	return routing
}
