// Package analytics forwards identify calls to an HTTP collector endpoint.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/uzera-playground/internal/config"
	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const tokenLifetime = 5 * time.Minute

var _ sessions.Identifier = (*Collector)(nil)

// Event is the body posted for every identify call.
type Event struct {
	EventID  string          `json:"eventId"`
	ID       string          `json:"id"`
	UserData sessions.Traits `json:"userData"`
	SentAt   time.Time       `json:"sentAt"`
}

type authMode string

const (
	authNone              authMode = "none"
	authSharedSecret      authMode = "jwt"
	authClientCredentials authMode = "client_credentials"
)

// Collector implements sessions.Identifier over HTTP.
type Collector struct {
	url    string
	issuer string
	secret []byte
	mode   authMode
	client *http.Client
}

// New builds a collector from configuration. Client credentials take precedence
// over a shared secret; with neither, events are posted unauthenticated.
func New(c config.CollectorConfig, issuer string) (*Collector, error) {
	if c.GetCollectorURL() == "" {
		return nil, errors.ErrCollectorNotAvailable
	}

	collector := &Collector{
		url:    c.GetCollectorURL(),
		issuer: issuer,
		mode:   authNone,
		client: &http.Client{},
	}

	switch {
	case c.GetCollectorTokenURL() != "" && c.GetCollectorClientID() != "":
		cc := clientcredentials.Config{
			ClientID:     c.GetCollectorClientID(),
			ClientSecret: c.GetCollectorClientSecret(),
			TokenURL:     c.GetCollectorTokenURL(),
		}
		// Token fetches are bounded by the same timeout as event posts
		tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: c.GetCollectorTimeout()})
		collector.client = cc.Client(tokenCtx)
		collector.mode = authClientCredentials
	case c.GetCollectorSecret() != "":
		collector.secret = []byte(c.GetCollectorSecret())
		collector.mode = authSharedSecret
	}
	collector.client.Timeout = c.GetCollectorTimeout()

	log.Info().Str("url", collector.url).Str("auth", string(collector.mode)).Msg("Identify collector configured")
	return collector, nil
}

// Identify posts an identify event for userID.
func (c *Collector) Identify(ctx context.Context, userID string, traits sessions.Traits) error {
	event := Event{
		EventID:  uuid.New().String(),
		ID:       userID,
		UserData: traits,
		SentAt:   NowTimeFunc().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrapf(err, "[Collector.Identify] marshal event")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "[Collector.Identify] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", event.EventID)

	if c.mode == authSharedSecret {
		token, err := c.signToken(userID)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Collector.Identify] post")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("[Collector.Identify] status %d: %w", resp.StatusCode, errors.ErrCollectorRejected)
	}

	log.Debug().Str("event_id", event.EventID).Str("user_id", userID).Msg("Identify event sent")
	return nil
}

func (c *Collector) signToken(userID string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"iss": c.issuer,
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
		"jti": uuid.New().String(),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign collector token: %w", err)
	}
	return signed, nil
}
