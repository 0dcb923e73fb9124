// Package client is a typed caller of the hrportal HTTP API. A Client keeps
// the bearer token in memory for the life of the session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"hrportal/internal/domain/core"
	"hrportal/internal/domain/requests"
)

const MinPasswordLength = 6

var (
	ErrNetwork          = errors.New("network error")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AccountInput struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

type Registration struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Dashboard struct {
	Message string `json:"message"`
	Data    struct {
		Employees   int            `json:"employees"`
		Departments int            `json:"departments"`
		Users       int            `json:"users"`
		Requests    map[string]int `json:"requests"`
	} `json:"data"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
	user  SessionUser
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NormalizeUsername trims and lower-cases a username the way the login form does.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns the account captured by the last successful Login.
func (c *Client) User() SessionUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.user = SessionUser{}
}

func (c *Client) Register(ctx context.Context, username, password, role string) (Registration, error) {
	var out Registration
	err := c.do(ctx, http.MethodPost, "/api/register", AccountInput{Username: NormalizeUsername(username), Password: password, Role: role}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, username, password string) (SessionUser, error) {
	var out struct {
		Token string      `json:"token"`
		User  SessionUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", AccountInput{Username: NormalizeUsername(username), Password: password}, &out); err != nil {
		return SessionUser{}, err
	}

	c.mu.Lock()
	c.token = out.Token
	c.user = out.User
	c.mu.Unlock()
	return out.User, nil
}

func (c *Client) Profile(ctx context.Context) (SessionUser, error) {
	var out struct {
		User SessionUser `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, &out)
	return out.User, err
}

func (c *Client) AdminDashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	err := c.do(ctx, http.MethodGet, "/api/admin/dashboard", nil, &out)
	return out, err
}

func (c *Client) GuestContent(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodGet, "/api/content/guest", nil, &out)
	return out.Message, err
}

func (c *Client) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	var out []core.Employee
	err := c.do(ctx, http.MethodGet, "/api/employees", nil, &out)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, emp core.Employee) (core.Employee, error) {
	emp.UserEmail = NormalizeUsername(emp.UserEmail)
	var out core.Employee
	err := c.do(ctx, http.MethodPost, "/api/employees", emp, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, patch core.EmployeePatch) (core.Employee, error) {
	var out core.Employee
	err := c.do(ctx, http.MethodPut, "/api/employees/"+strconv.FormatInt(id, 10), patch, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/employees/"+strconv.FormatInt(id, 10), nil, nil)
}

// ExportEmployees downloads the roster as pdf, xlsx or csv.
func (c *Client) ExportEmployees(ctx context.Context, format string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/employees/export?"+url.Values{"format": {format}}.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return data, nil
}

func (c *Client) ListDepartments(ctx context.Context) ([]core.Department, error) {
	var out []core.Department
	err := c.do(ctx, http.MethodGet, "/api/departments", nil, &out)
	return out, err
}

func (c *Client) CreateDepartment(ctx context.Context, dep core.Department) (core.Department, error) {
	var out core.Department
	err := c.do(ctx, http.MethodPost, "/api/departments", dep, &out)
	return out, err
}

func (c *Client) UpdateDepartment(ctx context.Context, id int64, patch core.DepartmentPatch) (core.Department, error) {
	var out core.Department
	err := c.do(ctx, http.MethodPut, "/api/departments/"+strconv.FormatInt(id, 10), patch, &out)
	return out, err
}

func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/departments/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListRequests(ctx context.Context) ([]requests.Request, error) {
	var out []requests.Request
	err := c.do(ctx, http.MethodGet, "/api/requests", nil, &out)
	return out, err
}

func (c *Client) CreateRequest(ctx context.Context, reqType string, items []requests.Item) (requests.Request, error) {
	if items == nil {
		items = []requests.Item{}
	}
	payload := struct {
		Type  string          `json:"type"`
		Items []requests.Item `json:"items"`
	}{Type: reqType, Items: items}
	var out requests.Request
	err := c.do(ctx, http.MethodPost, "/api/requests", payload, &out)
	return out, err
}

func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/requests/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]Account, error) {
	var out []Account
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

// CreateUser requires a password of at least MinPasswordLength characters.
func (c *Client) CreateUser(ctx context.Context, in AccountInput) (Account, error) {
	if len(in.Password) < MinPasswordLength {
		return Account{}, ErrPasswordTooShort
	}
	in.Username = NormalizeUsername(in.Username)
	var out Account
	err := c.do(ctx, http.MethodPost, "/api/users", in, &out)
	return out, err
}

// UpdateUser sends only the non-empty fields. A new password must meet the
// minimum length.
func (c *Client) UpdateUser(ctx context.Context, id int64, in AccountInput) (Account, error) {
	if in.Password != "" && len(in.Password) < MinPasswordLength {
		return Account{}, ErrPasswordTooShort
	}
	in.Username = NormalizeUsername(in.Username)
	var out Account
	err := c.do(ctx, http.MethodPut, "/api/users/"+strconv.FormatInt(id, 10), in, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx answers into *APIError.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(data, &body); err == nil {
		msg = body.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
