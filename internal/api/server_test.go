package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/db"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/pkg/authclient"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/pkg/jwthelper"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []domain.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]domain.BookingEvent(nil), p.events...)
}

func testConfig(rps float64, burst int) *config.AppConfig {
	return &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "0",
			BaseURL:            "localhost",
			AllowedCORSDomains: []string{"http://localhost:4200"},
			JWTSigningKey:      "server-test-key",
			JWTTTL:             time.Hour,
			AllowAdminSignup:   true,
		},
		Gin:       &config.GinConfig{Mode: "test"},
		Database:  &config.DatabaseConfig{Driver: "sqlite"},
		RateLimit: &config.RateLimitConfig{RequestsPerSecond: rps, Burst: burst},
	}
}

func newTestServer(t *testing.T, rps float64, burst int) (*httptest.Server, *recordingPublisher) {
	t.Helper()

	return newTestServerWith(t, testConfig(rps, burst))
}

func newTestServerWith(t *testing.T, conf *config.AppConfig) (*httptest.Server, *recordingPublisher) {
	t.Helper()

	gdb, err := db.OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	_, err = db.NewMigrator(gdb).Up(context.Background())
	require.NoError(t, err)

	pub := &recordingPublisher{}
	s := NewServer(conf, gdb, Deps{Publisher: pub})

	srv := httptest.NewServer(s.Router)
	t.Cleanup(srv.Close)

	return srv, pub
}

func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func register(t *testing.T, apiURL, username, role string) (*authclient.Client, authclient.Session) {
	t.Helper()

	c := authclient.New(apiURL, authclient.NewMemoryStorage())
	session, err := c.Register(context.Background(), authclient.RegisterRequest{
		Username:     username,
		Password:     "Passw0rd",
		UserRole:     role,
		Email:        username + "@example.com",
		MobileNumber: "5551234567",
	})
	require.NoError(t, err)

	return c, session
}

func TestServer_Healthcheck(t *testing.T) {
	srv, _ := newTestServer(t, 100, 10)

	var body map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/", "", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServer_RegisterAndLoginThroughClient(t *testing.T) {
	srv, _ := newTestServer(t, 100, 10)

	alice, session := register(t, srv.URL, "alice", "CUSTOMER")
	assert.Equal(t, "CUSTOMER", session.Role)
	assert.Equal(t, uint(1), session.UserID)
	assert.True(t, alice.IsAuthenticated())
	assert.True(t, alice.IsCustomer())
	assert.False(t, alice.IsAdmin())
	assert.Equal(t, "alice", alice.CustomerName())
	require.NotNil(t, alice.State().CurrentUser())
	assert.Equal(t, "1", *alice.State().CurrentUser())

	_, err := alice.Register(context.Background(), authclient.RegisterRequest{
		Username: "alice", Password: "Passw0rd", UserRole: "CUSTOMER", Email: "alice@example.com", MobileNumber: "555",
	})
	assert.True(t, authclient.IsStatus(err, http.StatusConflict))

	fresh := authclient.New(srv.URL, authclient.NewMemoryStorage())
	_, err = fresh.Login(context.Background(), "alice@example.com", "wrong-password1")
	assert.True(t, authclient.IsStatus(err, http.StatusUnauthorized))
	assert.False(t, fresh.IsAuthenticated())

	_, err = fresh.Login(context.Background(), "alice@example.com", "Passw0rd")
	require.NoError(t, err)
	assert.True(t, fresh.State().Authenticated())
	assert.Equal(t, "CUSTOMER", fresh.State().Role())

	fresh.Logout()
	assert.False(t, fresh.IsAuthenticated())
	assert.False(t, fresh.IsCustomer())
}

func TestServer_RegisterValidation(t *testing.T) {
	srv, _ := newTestServer(t, 100, 10)

	status := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"username": "bob", "password": "short", "userRole": "CUSTOMER", "email": "bob@example.com", "mobileNumber": "555",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"username": "bob", "password": "Passw0rd", "userRole": "OWNER", "email": "bob@example.com", "mobileNumber": "555",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_RegisterRejectsOverlongPassword(t *testing.T) {
	srv, _ := newTestServer(t, 100, 10)

	status := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"username": "bob", "password": strings.Repeat("a1", 37), "userRole": "CUSTOMER", "email": "bob@example.com", "mobileNumber": "555",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_AdminSignupNeedsSwitchOrAdmin(t *testing.T) {
	conf := testConfig(100, 10)
	conf.API.AllowAdminSignup = false
	srv, _ := newTestServerWith(t, conf)

	adminReq := func(name string) map[string]string {
		return map[string]string{
			"username": name, "password": "Passw0rd", "userRole": "ADMIN", "email": name + "@example.com", "mobileNumber": "555",
		}
	}

	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodPost, srv.URL+"/api/register", "", adminReq("mallory"), nil))

	_, alice := register(t, srv.URL, "alice", "CUSTOMER")
	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodPost, srv.URL+"/api/register", alice.Token, adminReq("mallory"), nil))

	rootToken, err := jwthelper.GenerateToken([]byte(conf.API.JWTSigningKey), 99, "root", "ADMIN", time.Hour)
	require.NoError(t, err)

	var created map[string]any
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, srv.URL+"/api/register", rootToken, adminReq("ops"), &created))
	assert.Equal(t, "ADMIN", created["role"])
}

func TestServer_CORSAllowsConfiguredOrigin(t *testing.T) {
	srv, _ := newTestServer(t, 100, 10)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/resorts", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:4200", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_BookingFlow(t *testing.T) {
	srv, pub := newTestServer(t, 100, 10)
	_, admin := register(t, srv.URL, "root", "ADMIN")
	_, alice := register(t, srv.URL, "alice", "CUSTOMER")
	_, bob := register(t, srv.URL, "bob", "CUSTOMER")

	resortReq := map[string]any{
		"resortName": "Sea View", "resortLocation": "Goa", "description": "Beach front",
		"resortImageUrl": "https://example.com/sea.jpg", "price": 120, "capacity": 4,
	}
	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodPost, srv.URL+"/api/resorts", alice.Token, resortReq, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, http.MethodPost, srv.URL+"/api/resorts", "", resortReq, nil))

	var resort domain.Resort
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, srv.URL+"/api/resorts", admin.Token, resortReq, &resort))
	assert.Equal(t, uint(1), resort.ID)
	assert.Equal(t, domain.ResortAvailable, resort.ResortAvailableStatus)

	var resorts []domain.Resort
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/resorts", "", nil, &resorts))
	assert.Len(t, resorts, 1)

	bookingReq := map[string]any{
		"fromDate": "2024-03-01", "toDate": "2024-03-04", "address": "1 Main St", "noOfPersons": 2, "resortId": resort.ID,
	}
	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodPost, srv.URL+"/api/bookings", admin.Token, bookingReq, nil))

	var booking domain.Booking
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, srv.URL+"/api/bookings", alice.Token, bookingReq, &booking))
	assert.Equal(t, 360.0, booking.TotalPrice)
	assert.Equal(t, alice.UserID, booking.UserID)
	require.Len(t, pub.Events(), 1)
	assert.Equal(t, domain.EventBookingCreated, pub.Events()[0].Type)

	tooMany := map[string]any{
		"fromDate": "2024-03-01", "toDate": "2024-03-02", "address": "1 Main St", "noOfPersons": 9, "resortId": resort.ID,
	}
	assert.Equal(t, http.StatusConflict, doJSON(t, http.MethodPost, srv.URL+"/api/bookings", alice.Token, tooMany, nil))

	missingResort := map[string]any{
		"fromDate": "2024-03-01", "toDate": "2024-03-02", "address": "1 Main St", "noOfPersons": 1, "resortId": 99,
	}
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPost, srv.URL+"/api/bookings", alice.Token, missingResort, nil))

	var own []domain.Booking
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/bookings", bob.Token, nil, &own))
	assert.Empty(t, own)

	var all []domain.Booking
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/bookings", admin.Token, nil, &all))
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Resort)
	assert.Equal(t, "Sea View", all[0].Resort.ResortName)

	bookingURL := srv.URL + "/api/bookings/" + jsonNumber(booking.ID)
	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodDelete, bookingURL, bob.Token, nil, nil))
	assert.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, bookingURL, alice.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodDelete, bookingURL, alice.Token, nil, nil))
	require.Len(t, pub.Events(), 2)
	assert.Equal(t, domain.EventBookingCancelled, pub.Events()[1].Type)

	unavailable := resortReq
	unavailable["resortAvailableStatus"] = domain.ResortUnavailable
	resortURL := srv.URL + "/api/resorts/" + jsonNumber(resort.ID)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPut, resortURL, admin.Token, unavailable, nil))
	assert.Equal(t, http.StatusConflict, doJSON(t, http.MethodPost, srv.URL+"/api/bookings", alice.Token, bookingReq, nil))

	assert.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, resortURL, admin.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, resortURL, "", nil, nil))
}

func TestServer_ReviewsAndUserDeletionCascade(t *testing.T) {
	srv, _ := newTestServer(t, 100, 10)
	_, admin := register(t, srv.URL, "root", "ADMIN")
	_, alice := register(t, srv.URL, "alice", "CUSTOMER")
	_, bob := register(t, srv.URL, "bob", "CUSTOMER")

	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, srv.URL+"/api/reviews", alice.Token,
		map[string]any{"subject": "Meh", "body": "Too sunny", "rating": 6}, nil))

	var review domain.Review
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, srv.URL+"/api/reviews", alice.Token,
		map[string]any{"subject": "Great", "body": "Loved it", "rating": 5}, &review))
	assert.Equal(t, "alice", review.Username)
	assert.False(t, review.DateCreated.IsZero())

	reviewURL := srv.URL + "/api/reviews/" + jsonNumber(review.ID)
	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodDelete, reviewURL, bob.Token, nil, nil))

	var reviews []domain.Review
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/reviews", bob.Token, nil, &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].Username)

	aliceURL := srv.URL + "/api/users/" + jsonNumber(alice.UserID)
	var user map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, aliceURL, alice.Token, nil, &user))
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "password")

	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodGet, aliceURL, bob.Token, nil, nil))
	assert.Equal(t, http.StatusForbidden, doJSON(t, http.MethodDelete, aliceURL, bob.Token, nil, nil))
	assert.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, aliceURL, admin.Token, nil, nil))

	reviews = nil
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/reviews", bob.Token, nil, &reviews))
	assert.Empty(t, reviews)

	// The deleted user's token still verifies but no longer maps to a user.
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, http.MethodGet, srv.URL+"/api/bookings", alice.Token, nil, nil))
}

func TestServer_AuthEndpointsAreRateLimited(t *testing.T) {
	srv, _ := newTestServer(t, 0.001, 1)

	body := map[string]string{"email": "nobody@example.com", "password": "Passw0rd"}
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, http.MethodPost, srv.URL+"/api/login", "", body, nil))
	assert.Equal(t, http.StatusTooManyRequests, doJSON(t, http.MethodPost, srv.URL+"/api/login", "", body, nil))

	assert.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/resorts", "", nil, nil))
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
