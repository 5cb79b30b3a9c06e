package shiprocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTokenStore struct {
	record      *models.ShiprocketIntegration
	saved       int
	invalidated int
}

func (s *mockTokenStore) Load(ctx context.Context) (*models.ShiprocketIntegration, error) {
	return s.record, nil
}

func (s *mockTokenStore) Save(ctx context.Context, email, token string, expiry time.Time) error {
	s.saved++
	s.record = &models.ShiprocketIntegration{
		Email:       email,
		Token:       token,
		TokenExpiry: &expiry,
		IsActive:    true,
	}
	return nil
}

func (s *mockTokenStore) Invalidate(ctx context.Context) error {
	s.invalidated++
	if s.record != nil {
		s.record.Token = ""
		s.record.TokenExpiry = nil
	}
	return nil
}

func TestAuthenticateStoresToken(t *testing.T) {
	var gotPassword string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotPassword = body["password"]
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123", "email": body["email"]})
	}))
	defer srv.Close()

	store := &mockTokenStore{}
	client := NewClient(srv.URL, store)

	token, err := client.Authenticate(context.Background(), "ops@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "hunter2", gotPassword)

	// The persisted record holds the token and expiry, never the password.
	require.Equal(t, 1, store.saved)
	assert.Equal(t, "ops@example.com", store.record.Email)
	assert.Equal(t, "tok-123", store.record.Token)
	require.NotNil(t, store.record.TokenExpiry)
	assert.WithinDuration(t, time.Now().Add(9*24*time.Hour), *store.record.TokenExpiry, time.Minute)
}

func TestGetValidTokenExpiredByOneSecond(t *testing.T) {
	client := NewClient("http://unused", &mockTokenStore{})
	client.token = "stale"
	client.expiry = time.Now().Add(-time.Second)

	_, err := client.getValidToken(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestGetValidTokenFallsBackToStore(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	store := &mockTokenStore{record: &models.ShiprocketIntegration{
		Email:       "ops@example.com",
		Token:       "persisted-token",
		TokenExpiry: &expiry,
	}}
	client := NewClient("http://unused", store)

	token, err := client.getValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)

	// A second call hits the in-memory copy.
	store.record = nil
	token, err = client.getValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
}

func TestGetValidTokenIgnoresExpiredStoreRecord(t *testing.T) {
	expiry := time.Now().Add(-time.Second)
	store := &mockTokenStore{record: &models.ShiprocketIntegration{
		Token:       "stale",
		TokenExpiry: &expiry,
	}}
	client := NewClient("http://unused", store)

	_, err := client.getValidToken(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestDoRequestUnauthorizedInvalidatesOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &mockTokenStore{}
	client := NewClient(srv.URL, store)
	client.token = "revoked"
	client.expiry = time.Now().Add(time.Hour)

	err := client.doRequest(context.Background(), http.MethodGet, "/settings/company/pickup", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.Equal(t, int32(1), calls, "401 must not be retried")
	assert.Equal(t, 1, store.invalidated)
	assert.Empty(t, client.token)

	// Follow-up calls fail locally: no credentials are held for re-login.
	err = client.doRequest(context.Background(), http.MethodGet, "/settings/company/pickup", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.Equal(t, int32(1), calls)
}

func TestDoRequestAttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	client.token = "tok-abc"
	client.expiry = time.Now().Add(time.Hour)

	var out map[string]string
	err := client.doRequest(context.Background(), http.MethodGet, "/anything", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "yes", out["ok"])
}

func TestDoRequestMapsCarrierError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid pickup location"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	client.token = "tok"
	client.expiry = time.Now().Add(time.Hour)

	err := client.doRequest(context.Background(), http.MethodGet, "/orders/create/adhoc", nil, nil)
	var carrierErr *apperrors.CarrierError
	require.ErrorAs(t, err, &carrierErr)
	assert.Equal(t, http.StatusBadRequest, carrierErr.StatusCode)
	assert.Equal(t, "Invalid pickup location", carrierErr.Message)
}
