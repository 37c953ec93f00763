// Package client is a typed HTTP client for the member REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Kerhoff/GymMembers/internal/models"
)

// APIError is a non-2xx response from the member API
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" && e.Details != e.Message {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// IsStatus reports whether err is an APIError with the given HTTP status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client talks to a member API rooted at BaseURL
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type createMemberRequest struct {
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	MembershipType models.MembershipType `json:"membership_type,omitempty"`
	JoinDate       models.Date           `json:"join_date"`
	Status         models.MemberStatus   `json:"status,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type messageBody struct {
	Message string `json:"message"`
}

// List fetches every member, ordered by name
func (c *Client) List(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := c.do(ctx, http.MethodGet, "/api/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Get fetches a single member
func (c *Client) Get(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/members/%d", id), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create submits a new member and returns the stored record
func (c *Client) Create(ctx context.Context, m models.Member) (*models.Member, error) {
	req := createMemberRequest{
		Name:           m.Name,
		Email:          m.Email,
		MembershipType: m.MembershipType,
		JoinDate:       m.JoinDate,
		Status:         m.Status,
	}
	var created models.Member
	if err := c.do(ctx, http.MethodPost, "/api/members", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update sends the supplied fields of patch and returns the full record
func (c *Client) Update(ctx context.Context, id int64, patch models.MemberPatch) (*models.Member, error) {
	var updated models.Member
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/members/%d", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a member and returns the server's confirmation message
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	var body messageBody
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/members/%d", id), nil, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
		apiErr.Details = fmt.Sprintf("failed to read error body: %v", err)
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		return apiErr
	}

	apiErr.Message = http.StatusText(resp.StatusCode)
	apiErr.Details = strings.TrimSpace(string(raw))
	return apiErr
}
