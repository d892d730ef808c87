package directory

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

// Client talks to the customer directory of the ticketing system.
type Client struct {
	client   *http.Client
	baseURL  string
	email    string
	apiToken string
}

// NewClient creates a directory client authenticated with an account email
// and API token.
func NewClient(baseURL, email, apiToken string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  baseURL,
		email:    email,
		apiToken: apiToken,
	}
}

type createCustomerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type createCustomerResponse struct {
	AccountID string `json:"accountId"`
}

// CreateCustomer registers a customer in the directory. The returned account
// id may be empty even on success; callers fall back to a search.
func (c *Client) CreateCustomer(ctx context.Context, email, displayName string) (string, error) {
	u, err := url.JoinPath(c.baseURL, "rest", "servicedeskapi", "customer")
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(createCustomerRequest{Email: email, DisplayName: displayName})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.prepare(req)
	// customer creation is still behind the experimental opt-in
	req.Header.Set("X-ExperimentalApi", "opt-in")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return "", err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", apiError(resp)
	}

	created := createCustomerResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.AccountID, nil
}

type searchUser struct {
	AccountID string `json:"accountId"`
}

// SearchCustomerByEmail looks the customer up by exact email match. The
// directory's search index lags its write path, so an empty result shortly
// after creation is expected.
func (c *Client) SearchCustomerByEmail(ctx context.Context, email string) ([]models.DirectoryCustomer, error) {
	u, err := url.JoinPath(c.baseURL, "rest", "api", "3", "user", "search")
	if err != nil {
		return nil, err
	}
	u += "?query=" + url.QueryEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.prepare(req)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var found []searchUser
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, err
	}

	customers := make([]models.DirectoryCustomer, 0, len(found))
	for _, user := range found {
		customers = append(customers, models.DirectoryCustomer{AccountID: user.AccountID})
	}
	return customers, nil
}

type addCustomerRequest struct {
	AccountIDs []string `json:"accountIds"`
}

// AddCustomerToServiceDesk grants the customer portal access to the service
// desk. The external system sends its welcome notification as a side effect.
func (c *Client) AddCustomerToServiceDesk(ctx context.Context, serviceDeskID, accountID string) error {
	u, err := url.JoinPath(c.baseURL, "rest", "servicedeskapi", "servicedesk", serviceDeskID, "customer")
	if err != nil {
		return err
	}

	body, err := json.Marshal(addCustomerRequest{AccountIDs: []string{accountID}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.prepare(req)

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
	return nil
}

func (c *Client) prepare(req *http.Request) {
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

type errorBody struct {
	ErrorMessage  string            `json:"errorMessage"`
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// apiError converts a non-2xx response into an APIError carrying the status
// code and whatever message fields the body holds.
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
