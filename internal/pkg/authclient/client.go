package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/pkg/jwthelper"
)

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	UserRole     string `json:"userRole"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what the API returns from register and login.
type Session struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	UserID   uint   `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
}

// ErrNoToken is returned when the API accepts a register or login but sends
// no token back.
var ErrNoToken = errors.New("api response carried no token")

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api responded %d", e.StatusCode)
	}

	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Message)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// Client talks to the resort booking API and keeps the resulting session in
// its Storage.
type Client struct {
	apiURL  string
	storage Storage
	http    *http.Client
	log     *zap.Logger
	state   *State
}

func New(apiURL string, storage Storage, opts ...Option) *Client {
	c := &Client{
		apiURL:  strings.TrimRight(apiURL, "/"),
		storage: storage,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var initial Snapshot
	if v, ok := c.get(KeyCurrentUser); ok {
		initial.CurrentUser = &v
	}
	initial.Role, _ = c.get(KeyUserRole)
	initial.Authenticated = c.IsAuthenticated()
	c.state = newState(initial)

	return c
}

func (c *Client) State() *State {
	return c.state
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	session, err := c.authenticate(ctx, "/api/register", req)
	if err != nil {
		c.log.Error("register failed", zap.String("email", req.Email), zap.Error(err))
		return Session{}, fmt.Errorf("register -> %w", err)
	}

	return session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	session, err := c.authenticate(ctx, "/api/login", loginRequest{Email: email, Password: password})
	if err != nil {
		c.log.Error("login failed", zap.String("email", email), zap.Error(err))
		return Session{}, fmt.Errorf("login -> %w", err)
	}

	return session, nil
}

// Logout forgets the session. Storage failures are logged only.
func (c *Client) Logout() {
	c.clearSession()
}

func (c *Client) IsAuthenticated() bool {
	token, ok := c.get(KeyToken)

	return ok && token != ""
}

func (c *Client) IsAdmin() bool {
	return c.roleClaim() == RoleAdmin
}

func (c *Client) IsCustomer() bool {
	return c.roleClaim() == RoleCustomer
}

// CustomerName is the name claim of the stored token, or "".
func (c *Client) CustomerName() string {
	claims, ok := c.claims()
	if !ok {
		return ""
	}

	return stringClaim(claims, jwthelper.NameClaim)
}

func (c *Client) roleClaim() string {
	claims, ok := c.claims()
	if !ok {
		return ""
	}

	return stringClaim(claims, jwthelper.RoleClaim)
}

func (c *Client) claims() (map[string]any, bool) {
	token, ok := c.get(KeyToken)
	if !ok || token == "" {
		return nil, false
	}

	return decodeClaims(token, c.log)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (Session, error) {
	var session Session
	if err := c.post(ctx, path, body, &session); err != nil {
		return Session{}, err
	}

	if err := c.storeSession(session); err != nil {
		return Session{}, err
	}

	return session, nil
}

// storeSession replaces the stored session. The token is written last since
// it alone marks the client as signed in; if any write fails the session is
// cleared rather than left half replaced.
func (c *Client) storeSession(session Session) error {
	if session.Token == "" {
		return ErrNoToken
	}

	snap := Snapshot{Authenticated: true, Role: session.Role}

	var err error
	if session.UserID != 0 {
		id := strconv.FormatUint(uint64(session.UserID), 10)
		snap.CurrentUser = &id
		err = c.storage.Set(KeyCurrentUser, id)
	} else {
		err = c.storage.Remove(KeyCurrentUser)
	}
	if err == nil {
		err = c.storage.Set(KeyUserRole, session.Role)
	}
	if err == nil {
		err = c.storage.Set(KeyToken, session.Token)
	}
	if err != nil {
		c.clearSession()
		return fmt.Errorf("c.storage -> %w", err)
	}

	c.state.publish(snap)

	return nil
}

func (c *Client) clearSession() {
	for _, key := range []string{KeyToken, KeyCurrentUser, KeyUserRole} {
		if err := c.storage.Remove(key); err != nil {
			c.log.Warn("failed to remove session value", zap.String("key", key), zap.Error(err))
		}
	}

	c.state.publish(Snapshot{})
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("c.http.Do -> %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("io.ReadAll -> %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return nil
}

func (c *Client) get(key string) (string, bool) {
	v, ok, err := c.storage.Get(key)
	if err != nil {
		c.log.Warn("failed to read session value", zap.String("key", key), zap.Error(err))
		return "", false
	}

	return v, ok
}

func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}

	return strings.TrimSpace(string(body))
}

// IsStatus reports whether err carries an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}
