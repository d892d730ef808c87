package provision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deskhook/deskhook/internal/models"
	"github.com/deskhook/deskhook/internal/provision/mocks"
	"github.com/deskhook/deskhook/internal/records"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 8, 30, 23, 30, 0, 0, time.UTC)

func testDefaults() Defaults {
	return Defaults{
		WorkspaceProjectKey: "OPS",
		ServiceDeskKey:      "HELP",
		ServiceDeskID:       "7",
		RequestTypeID:       "25",
		IssueType:           "Task",
		ParentIssueType:     "Epic",
	}
}

func testEvent(kind string) *models.OrderEvent {
	return &models.OrderEvent{
		CustomerEmail:        "jane@example.com",
		CustomerName:         "Jane Doe",
		CustomerPhone:        "+353-21-1234567",
		CustomerAddressLines: []string{"12 Elm St", "Cork", "T12", "IE"},
		AmountMinorUnits:     4999,
		Currency:             "eur",
		Routing: models.RoutingMetadata{
			IssueKind:    kind,
			Summary:      "Gold Plan",
			DurationDays: 5,
		},
	}
}

func newProvisioner(resolver IdentityResolver, rc RecordsClient, defaults Defaults) *Provisioner {
	p := New(resolver, rc, defaults, zap.NewNop())
	p.now = func() time.Time { return fixedNow }
	return p
}

func docLines(t *testing.T, doc *records.Document) []string {
	t.Helper()
	require.NotNil(t, doc)
	var lines []string
	for _, node := range doc.Content {
		require.Len(t, node.Content, 1)
		lines = append(lines, node.Content[0].Text)
	}
	return lines
}

func TestProvisionSupportVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "jane@example.com", "Jane Doe", "7").
		Return(models.IdentityResolution{AccountID: "acc-1", IsNew: true}, nil)

	var got records.CreateRecordRequest
	rc := mocks.NewMockRecordsClient(ctrl)
	rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
			got = rec
			return "HELP-12", nil
		}).Times(1)

	p := newProvisioner(resolver, rc, testDefaults())

	err := p.Provision(context.Background(), testEvent("support"))
	require.NoError(t, err)

	assert.Equal(t, "7", got.ServiceDeskID)
	assert.Equal(t, "25", got.RequestTypeID)
	assert.Empty(t, got.ProjectKey)
	assert.Equal(t, "Support Request for Gold Plan", got.Summary)
	assert.Equal(t, "2026-08-30", got.StartDate)
	assert.Equal(t, "2026-09-04", got.DueDate)
	assert.Equal(t, models.ReporterRef{AccountID: "acc-1"}, got.Reporter)
	assert.ElementsMatch(t, []string{"stripe", "New-Customer"}, got.Labels)

	lines := docLines(t, got.Description)
	assert.Contains(t, lines, "Amount Paid: 49.99 EUR")
	assert.Contains(t, lines, "Company Address: 12 Elm St, Cork, T12, IE")
	assert.Contains(t, lines, "Start Date: 2026-08-30")
	assert.Contains(t, lines, "End Date: 2026-09-04")
}

func TestProvisionSupportVariantCaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.IdentityResolution{AccountID: "acc-1"}, nil)

	var got records.CreateRecordRequest
	rc := mocks.NewMockRecordsClient(ctrl)
	rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
			got = rec
			return "HELP-13", nil
		}).Times(1)

	p := newProvisioner(resolver, rc, testDefaults())

	err := p.Provision(context.Background(), testEvent("SuppORT"))
	require.NoError(t, err)

	// an existing identity gets the existing-customer label
	assert.ElementsMatch(t, []string{"stripe", "Existing-Customer"}, got.Labels)
}

func TestProvisionWorkItemVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "jane@example.com", "Jane Doe", "7").
		Return(models.IdentityResolution{AccountID: "acc-1", IsNew: false}, nil)

	var parent, child, confirm records.CreateRecordRequest
	rc := mocks.NewMockRecordsClient(ctrl)
	gomock.InOrder(
		rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
				parent = rec
				return "OPS-1", nil
			}),
		rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
				child = rec
				return "OPS-2", nil
			}),
		rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
				confirm = rec
				return "HELP-3", nil
			}),
	)

	p := newProvisioner(resolver, rc, testDefaults())

	err := p.Provision(context.Background(), testEvent("onboarding"))
	require.NoError(t, err)

	assert.Equal(t, "OPS", parent.ProjectKey)
	assert.Equal(t, "Epic", parent.IssueType)
	assert.Equal(t, "New Client", parent.Summary)
	assert.Empty(t, parent.ParentKey)

	assert.Equal(t, "OPS", child.ProjectKey)
	assert.Equal(t, "Task", child.IssueType)
	assert.Equal(t, "Gold Plan", child.Summary)
	assert.Equal(t, "OPS-1", child.ParentKey)
	assert.Equal(t, "2026-09-04", child.DueDate)
	assert.Equal(t, models.ReporterRef{AccountID: "acc-1"}, child.Reporter)

	assert.Equal(t, "7", confirm.ServiceDeskID)
	assert.Equal(t, "25", confirm.RequestTypeID)
	assert.Contains(t, docLines(t, confirm.Description), "Reference: OPS-2")
}

func TestProvisionWorkItemWithoutServiceDesk(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// nothing desk-shaped configured, so onboarding is skipped entirely
	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	var child records.CreateRecordRequest
	rc := mocks.NewMockRecordsClient(ctrl)
	gomock.InOrder(
		rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return("OPS-1", nil),
		rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
				child = rec
				return "OPS-2", nil
			}),
	)

	p := newProvisioner(resolver, rc, Defaults{
		WorkspaceProjectKey: "OPS",
		IssueType:           "Task",
		ParentIssueType:     "Epic",
	})

	err := p.Provision(context.Background(), testEvent("onboarding"))
	require.NoError(t, err)

	// degraded attribution falls back to email
	assert.Equal(t, models.ReporterRef{Email: "jane@example.com"}, child.Reporter)
}

func TestProvisionMissingProjectKeyAbortsBeforeCreation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.IdentityResolution{AccountID: "acc-1"}, nil)

	rc := mocks.NewMockRecordsClient(ctrl)
	rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Times(0)

	defaults := testDefaults()
	defaults.WorkspaceProjectKey = ""

	p := newProvisioner(resolver, rc, defaults)

	err := p.Provision(context.Background(), testEvent("onboarding"))
	require.Error(t, err)

	var missing *models.MissingRoutingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "project_key", missing.Key)
}

func TestProvisionSupportMissingDeskAbortsBeforeCreation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rc := mocks.NewMockRecordsClient(ctrl)
	rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Times(0)

	p := newProvisioner(resolver, rc, Defaults{WorkspaceProjectKey: "OPS"})

	err := p.Provision(context.Background(), testEvent("support"))
	require.Error(t, err)

	var missing *models.MissingRoutingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "service_desk_id", missing.Key)
}

func TestProvisionResolverFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantErr := &models.IdentityAssociationError{AccountID: "acc-1", Err: errors.New("no permission")}

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.IdentityResolution{}, wantErr)

	rc := mocks.NewMockRecordsClient(ctrl)
	rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Times(0)

	p := newProvisioner(resolver, rc, testDefaults())

	err := p.Provision(context.Background(), testEvent("support"))
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestProvisionChildFailureSkipsConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.IdentityResolution{AccountID: "acc-1"}, nil)

	rc := mocks.NewMockRecordsClient(ctrl)
	gomock.InOrder(
		rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return("OPS-1", nil),
		rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return("", errors.New("boom")),
	)

	p := newProvisioner(resolver, rc, testDefaults())

	// the parent is not rolled back, the rest of the sequence just stops
	err := p.Provision(context.Background(), testEvent("onboarding"))
	require.Error(t, err)
}

func TestProvisionUnresolvedIdentityUsesEmailReporter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.IdentityResolution{}, nil)

	var got records.CreateRecordRequest
	rc := mocks.NewMockRecordsClient(ctrl)
	rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
			got = rec
			return "HELP-14", nil
		}).Times(1)

	p := newProvisioner(resolver, rc, testDefaults())

	err := p.Provision(context.Background(), testEvent("support"))
	require.NoError(t, err)

	assert.Equal(t, models.ReporterRef{Email: "jane@example.com"}, got.Reporter)
	assert.ElementsMatch(t, []string{"stripe", "Existing-Customer"}, got.Labels)
}

func TestProvisionRoutingOverridesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), "9").
		Return(models.IdentityResolution{AccountID: "acc-1"}, nil)

	var got records.CreateRecordRequest
	rc := mocks.NewMockRecordsClient(ctrl)
	rc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec records.CreateRecordRequest) (string, error) {
			got = rec
			return "VIP-1", nil
		}).Times(1)

	p := newProvisioner(resolver, rc, testDefaults())

	ev := testEvent("support")
	ev.Routing.ServiceDeskKey = "VIP"
	ev.Routing.ServiceDeskID = "9"

	err := p.Provision(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, "9", got.ServiceDeskID)
}
