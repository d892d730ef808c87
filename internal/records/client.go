package records

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deskhook/deskhook/internal/models"
)

// Client creates records in the ticketing system: customer-facing requests
// in a service desk, or plain issues in a workspace project.
type Client struct {
	client         *http.Client
	baseURL        string
	email          string
	apiToken       string
	startDateField string
}

// NewClient creates a record-creation client authenticated with an account
// email and API token. startDateField is the id of the custom attribute
// holding the engagement start date, configured out of band; empty disables
// it.
func NewClient(baseURL, email, apiToken, startDateField string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:        baseURL,
		email:          email,
		apiToken:       apiToken,
		startDateField: startDateField,
	}
}

// CreateRecordRequest describes one record to create. A set RequestTypeID
// selects the service-desk request endpoint; otherwise the record is created
// as an issue in ProjectKey.
type CreateRecordRequest struct {
	ProjectKey    string
	ServiceDeskID string
	RequestTypeID string
	IssueType     string
	Summary       string
	Description   *Document
	StartDate     string
	DueDate       string
	Labels        []string
	Reporter      models.ReporterRef
	ParentKey     string
}

// CreateRecord creates one record and returns its key.
func (c *Client) CreateRecord(ctx context.Context, rec CreateRecordRequest) (string, error) {
	if rec.RequestTypeID != "" {
		return c.createRequest(ctx, rec)
	}
	return c.createIssue(ctx, rec)
}

func (c *Client) createRequest(ctx context.Context, rec CreateRecordRequest) (string, error) {
	fieldValues := map[string]any{
		"summary": rec.Summary,
	}
	if rec.Description != nil {
		fieldValues["description"] = rec.Description
	}
	if rec.DueDate != "" {
		fieldValues["duedate"] = rec.DueDate
	}
	if rec.StartDate != "" && c.startDateField != "" {
		fieldValues[c.startDateField] = rec.StartDate
	}
	if len(rec.Labels) > 0 {
		fieldValues["labels"] = rec.Labels
	}

	// the request endpoint accepts either an account id or an email here
	onBehalfOf := rec.Reporter.AccountID
	if onBehalfOf == "" {
		onBehalfOf = rec.Reporter.Email
	}

	body := map[string]any{
		"serviceDeskId":      rec.ServiceDeskID,
		"requestTypeId":      rec.RequestTypeID,
		"raiseOnBehalfOf":    onBehalfOf,
		"requestFieldValues": fieldValues,
	}

	var created struct {
		IssueKey string `json:"issueKey"`
	}
	if err := c.post(ctx, body, &created, "rest", "servicedeskapi", "request"); err != nil {
		return "", err
	}
	return created.IssueKey, nil
}

func (c *Client) createIssue(ctx context.Context, rec CreateRecordRequest) (string, error) {
	fields := map[string]any{
		"project":   map[string]string{"key": rec.ProjectKey},
		"issuetype": map[string]string{"name": rec.IssueType},
		"summary":   rec.Summary,
	}
	if rec.Description != nil {
		fields["description"] = rec.Description
	}
	if rec.DueDate != "" {
		fields["duedate"] = rec.DueDate
	}
	if rec.StartDate != "" && c.startDateField != "" {
		fields[c.startDateField] = rec.StartDate
	}
	if len(rec.Labels) > 0 {
		fields["labels"] = rec.Labels
	}
	if rec.ParentKey != "" {
		fields["parent"] = map[string]string{"key": rec.ParentKey}
	}
	// the issue endpoint only takes reporters by account id; email
	// attribution stays in the description body
	if rec.Reporter.AccountID != "" {
		fields["reporter"] = map[string]string{"id": rec.Reporter.AccountID}
	}

	var created struct {
		Key string `json:"key"`
	}
	if err := c.post(ctx, map[string]any{"fields": fields}, &created, "rest", "api", "3", "issue"); err != nil {
		return "", err
	}
	return created.Key, nil
}

func (c *Client) post(ctx context.Context, body any, out any, elem ...string) error {
	u, err := url.JoinPath(c.baseURL, elem...)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apiError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type errorBody struct {
	ErrorMessage  string            `json:"errorMessage"`
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func apiError(resp *http.Response) error {
	apiErr := &models.APIError{StatusCode: resp.StatusCode}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apiErr
	}

	parts := body.ErrorMessages
	if body.ErrorMessage != "" {
		parts = append(parts, body.ErrorMessage)
	}
	for _, msg := range body.Errors {
		parts = append(parts, msg)
	}
	apiErr.Message = strings.Join(parts, "; ")

	return apiErr
}
