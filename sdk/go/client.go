package jobtrailsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal Jobtrail HTTP API client.
type Client struct {
	BaseURL     string
	BasePath    string
	APIKey      string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:  baseURL,
		BasePath: "/v1",
		Timeout:  10 * time.Second,
	}
}

// Company represents the API company model (partial).
type Company struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	MainLocation string `json:"main_location,omitempty"`
}

// Contact represents the API contact model (partial).
type Contact struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Seniority string  `json:"seniority,omitempty"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// Interaction represents the API interaction model (partial).
type Interaction struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"company_id"`
	ContactID           string  `json:"contact_id"`
	RecruiterID         *string `json:"recruiter_id,omitempty"`
	ParentInteractionID *string `json:"parent_interaction_id,omitempty"`
	DateSent            *string `json:"date_sent,omitempty"`
	NextFollowUpDate    *string `json:"next_follow_up_date,omitempty"`
	Status              string  `json:"status"`
	Type                string  `json:"type,omitempty"`
	SourceType          string  `json:"source_type"`
	ContactName         string  `json:"contact_name,omitempty"`
	RecruiterName       string  `json:"recruiter_name,omitempty"`
}

// ThreadRow is one interaction in a follow-up thread listing.
type ThreadRow struct {
	Interaction   Interaction `json:"interaction"`
	Depth         int         `json:"depth"`
	CycleBroken   bool        `json:"cycle_broken,omitempty"`
	Severity      string      `json:"severity"`
	Overdue       bool        `json:"overdue"`
	DaysSinceSent *int        `json:"days_since_sent,omitempty"`
}

// RecruiterSummary is one row of the recruiter ranking.
type RecruiterSummary struct {
	RecruiterID string `json:"recruiter_id"`
	Name        string `json:"name,omitempty"`
	Mandates    int    `json:"mandates"`
	Interviews  int    `json:"interviews"`
	Offers      int    `json:"offers"`
}

// Dashboard mirrors the dashboard panels.
type Dashboard struct {
	Today          string             `json:"today"`
	Overdue        []Interaction      `json:"overdue"`
	Approaching    []Interaction      `json:"approaching"`
	Scheduled      []Interaction      `json:"scheduled"`
	ThisWeek       []Interaction      `json:"this_week"`
	Recruiters     []RecruiterSummary `json:"recruiters"`
	RecruiterCount int                `json:"recruiter_count"`
}

// Event represents a log entry.
type Event struct {
	ID         int64          `json:"id"`
	TS         string         `json:"ts"`
	Type       string         `json:"type"`
	EntityID   string         `json:"entity_id"`
	EntityKind string         `json:"entity_kind"`
	Payload    map[string]any `json:"payload"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// PaginatedEvents wraps list responses with cursors.
type PaginatedEvents struct {
	Items      []Event `json:"items"`
	NextCursor string  `json:"next_cursor"`
}

// Me returns the owner the credentials resolve to.
func (c *Client) Me(ctx context.Context) (string, error) {
	var resp struct {
		OwnerID string `json:"owner_id"`
	}
	err := c.do(ctx, http.MethodGet, "me", nil, &resp)
	return resp.OwnerID, err
}

// CreateCompany creates a company. An empty type defaults to Other.
func (c *Client) CreateCompany(ctx context.Context, name, companyType string) (Company, error) {
	body := map[string]any{"name": name}
	if companyType != "" {
		body["type"] = companyType
	}
	var resp Company
	err := c.do(ctx, http.MethodPost, "companies", body, &resp)
	return resp, err
}

// ListCompanies returns companies, optionally filtered by type label.
func (c *Client) ListCompanies(ctx context.Context, companyType string) ([]Company, error) {
	endpoint := "companies"
	if companyType != "" {
		endpoint += "?type=" + url.QueryEscape(companyType)
	}
	var resp []Company
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// CreateContact adds a person to a company.
func (c *Client) CreateContact(ctx context.Context, companyID, firstName, lastName string) (Contact, error) {
	body := map[string]any{
		"company_id": companyID,
		"first_name": firstName,
		"last_name":  lastName,
	}
	var resp Contact
	err := c.do(ctx, http.MethodPost, "contacts", body, &resp)
	return resp, err
}

// CreateInteraction records an interaction. Fields are sent as given, e.g.
// "company_id", "contact_id", "source_type", "recruiter_id", "date_sent".
func (c *Client) CreateInteraction(ctx context.Context, fields map[string]any) (Interaction, error) {
	var resp Interaction
	err := c.do(ctx, http.MethodPost, "interactions", fields, &resp)
	return resp, err
}

// UpdateInteraction applies a partial update.
func (c *Client) UpdateInteraction(ctx context.Context, id string, fields map[string]any) (Interaction, error) {
	var resp Interaction
	err := c.do(ctx, http.MethodPatch, "interactions/"+url.PathEscape(id), fields, &resp)
	return resp, err
}

// DeleteInteraction removes an interaction; its follow-ups become top level.
func (c *Client) DeleteInteraction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "interactions/"+url.PathEscape(id), nil, nil)
}

// Threads returns interactions threaded by follow-up with their severity.
func (c *Client) Threads(ctx context.Context, filters url.Values) ([]ThreadRow, error) {
	endpoint := "interactions"
	if len(filters) > 0 {
		endpoint += "?" + filters.Encode()
	}
	var resp []ThreadRow
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// RecruiterRanking returns the top recruiters; limit <= 0 uses the server default.
func (c *Client) RecruiterRanking(ctx context.Context, limit int) ([]RecruiterSummary, error) {
	endpoint := "recruiters/ranking"
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}
	var resp []RecruiterSummary
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// Dashboard returns the follow-up panels.
func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var resp Dashboard
	err := c.do(ctx, http.MethodGet, "dashboard", nil, &resp)
	return resp, err
}

// Events returns recent events.
func (c *Client) Events(ctx context.Context, limit int) ([]Event, error) {
	page, err := c.EventsPage(ctx, limit, "")
	return page.Items, err
}

// EventsPage returns a paginated event listing, newest first.
func (c *Client) EventsPage(ctx context.Context, limit int, cursor string) (PaginatedEvents, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	endpoint := "events"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	var resp PaginatedEvents
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	target := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, target, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	switch {
	case c.BearerToken != "":
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	case c.APIKey != "":
		req.Header.Set("X-Api-Key", c.APIKey)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(b)}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(b, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	basePath := c.BasePath
	if basePath == "" {
		basePath = "/v1"
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.Trim(basePath, "/")
}
