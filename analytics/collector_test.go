package analytics_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/uzera-playground/analytics"
	"github.com/jrsteele09/uzera-playground/internal/config"
	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/sessions"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "usr_643ce4c6"
	testSecret = "collector-secret"
	testIssuer = "Uzera Playground"
)

var testTraits = sessions.Traits{Name: "John Doe", Email: "john@email.com"}

type capturedRequest struct {
	Authorization string
	EventHeader   string
	Event         analytics.Event
}

func newCollectorServer(t *testing.T, status int, captured *capturedRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		captured.Authorization = r.Header.Get("Authorization")
		captured.EventHeader = r.Header.Get("X-Event-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.Event))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := analytics.New(config.Collector{}, testIssuer)
	require.ErrorIs(t, err, errors.ErrCollectorNotAvailable)
}

func TestCollector_Unauthenticated(t *testing.T) {
	var captured capturedRequest
	srv := newCollectorServer(t, http.StatusAccepted, &captured)

	collector, err := analytics.New(config.Collector{URL: srv.URL, Timeout: time.Second}, testIssuer)
	require.NoError(t, err)

	require.NoError(t, collector.Identify(context.Background(), testUserID, testTraits))

	require.Empty(t, captured.Authorization)
	require.Equal(t, testUserID, captured.Event.ID)
	require.Equal(t, testTraits, captured.Event.UserData)
	require.Equal(t, captured.EventHeader, captured.Event.EventID)
	_, err = uuid.Parse(captured.Event.EventID)
	require.NoError(t, err)
}

func TestCollector_EventIDsAreUnique(t *testing.T) {
	var captured capturedRequest
	srv := newCollectorServer(t, http.StatusOK, &captured)

	collector, err := analytics.New(config.Collector{URL: srv.URL, Timeout: time.Second}, testIssuer)
	require.NoError(t, err)

	require.NoError(t, collector.Identify(context.Background(), testUserID, testTraits))
	first := captured.Event.EventID
	require.NoError(t, collector.Identify(context.Background(), testUserID, testTraits))
	require.NotEqual(t, first, captured.Event.EventID)
}

func TestCollector_SharedSecret(t *testing.T) {
	fixed := time.Now().Truncate(time.Second)
	analytics.NowTimeFunc = func() time.Time { return fixed }
	t.Cleanup(func() { analytics.NowTimeFunc = time.Now })

	var captured capturedRequest
	srv := newCollectorServer(t, http.StatusOK, &captured)

	collector, err := analytics.New(config.Collector{URL: srv.URL, Secret: testSecret, Timeout: time.Second}, testIssuer)
	require.NoError(t, err)
	require.NoError(t, collector.Identify(context.Background(), testUserID, testTraits))

	require.True(t, strings.HasPrefix(captured.Authorization, "Bearer "))
	tokenString := strings.TrimPrefix(captured.Authorization, "Bearer ")

	claims := jwtlib.MapClaims{}
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(token *jwtlib.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, testUserID, sub)

	iss, err := claims.GetIssuer()
	require.NoError(t, err)
	require.Equal(t, testIssuer, iss)

	require.True(t, captured.Event.SentAt.Equal(fixed.UTC()))
}

func TestCollector_ClientCredentials(t *testing.T) {
	var tokenRequests int
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests++
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"cc-token","token_type":"bearer","expires_in":3600}`))
	})

	var authorization string
	mux.HandleFunc("/identify", func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	collector, err := analytics.New(config.Collector{
		URL:          srv.URL + "/identify",
		Secret:       "ignored-when-client-credentials-configured",
		TokenURL:     srv.URL + "/token",
		ClientID:     "playground",
		ClientSecret: "playground-secret",
		Timeout:      time.Second,
	}, testIssuer)
	require.NoError(t, err)

	require.NoError(t, collector.Identify(context.Background(), testUserID, testTraits))
	require.NoError(t, collector.Identify(context.Background(), testUserID, testTraits))

	require.Equal(t, "Bearer cc-token", authorization)
	require.Equal(t, 1, tokenRequests)
}

func TestCollector_ClientCredentialsTokenTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	})
	mux.HandleFunc("/identify", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	collector, err := analytics.New(config.Collector{
		URL:          srv.URL + "/identify",
		TokenURL:     srv.URL + "/token",
		ClientID:     "playground",
		ClientSecret: "playground-secret",
		Timeout:      200 * time.Millisecond,
	}, testIssuer)
	require.NoError(t, err)

	start := time.Now()
	err = collector.Identify(context.Background(), testUserID, testTraits)
	require.Error(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestCollector_Rejected(t *testing.T) {
	var captured capturedRequest
	srv := newCollectorServer(t, http.StatusUnauthorized, &captured)

	collector, err := analytics.New(config.Collector{URL: srv.URL, Timeout: time.Second}, testIssuer)
	require.NoError(t, err)

	err = collector.Identify(context.Background(), testUserID, testTraits)
	require.ErrorIs(t, err, errors.ErrCollectorRejected)
	require.Contains(t, err.Error(), "status 401")
}

func TestCollector_AsSessionIdentifier(t *testing.T) {
	var captured capturedRequest
	srv := newCollectorServer(t, http.StatusOK, &captured)

	collector, err := analytics.New(config.Collector{URL: srv.URL, Timeout: time.Second}, testIssuer)
	require.NoError(t, err)

	var identifier sessions.Identifier = collector
	require.NoError(t, identifier.Identify(context.Background(), testUserID, testTraits))
	require.Equal(t, testUserID, captured.Event.ID)
}
