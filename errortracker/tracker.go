// Package errortracker keeps per-category error counters in storage, the way the demo page
// tallies script, network and resource failures across reloads.
package errortracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/storage"
	"github.com/rs/zerolog/log"
)

const StorageKey = "errorCounts"

const (
	KindJS       = "jsErrors"
	KindNetwork  = "networkErrors"
	KindServer   = "serverErrors"
	KindClient   = "clientErrors"
	KindResource = "resourceErrors"
)

var aliases = map[string]string{
	"js":       KindJS,
	"network":  KindNetwork,
	"server":   KindServer,
	"client":   KindClient,
	"resource": KindResource,
}

type Counts struct {
	JSErrors       int `json:"jsErrors"`
	NetworkErrors  int `json:"networkErrors"`
	ServerErrors   int `json:"serverErrors"`
	ClientErrors   int `json:"clientErrors"`
	ResourceErrors int `json:"resourceErrors"`
}

func (c *Counts) counter(kind string) *int {
	switch kind {
	case KindJS:
		return &c.JSErrors
	case KindNetwork:
		return &c.NetworkErrors
	case KindServer:
		return &c.ServerErrors
	case KindClient:
		return &c.ClientErrors
	case KindResource:
		return &c.ResourceErrors
	}
	return nil
}

// ResolveKind maps a short alias or full counter name to the counter name.
func ResolveKind(kind string) (string, error) {
	if full, ok := aliases[kind]; ok {
		return full, nil
	}
	if (&Counts{}).counter(kind) != nil {
		return kind, nil
	}
	return "", fmt.Errorf("%q: %w", kind, errors.ErrUnknownErrorKind)
}

type Tracker struct {
	kv storage.KeyValue
}

func New(kv storage.KeyValue) *Tracker {
	return &Tracker{kv: kv}
}

// Counts returns the stored counters. Missing or unreadable data counts as zero.
func (t *Tracker) Counts(ctx context.Context) (Counts, error) {
	var counts Counts

	stored, found, err := t.kv.Get(ctx, StorageKey)
	if err != nil {
		return counts, errors.Wrapf(err, "[errortracker.Counts] read")
	}
	if !found || stored == "" {
		return counts, nil
	}
	if err := json.Unmarshal([]byte(stored), &counts); err != nil {
		log.Debug().Err(err).Str("key", StorageKey).Msg("Ignoring unreadable error counts")
		return Counts{}, nil
	}
	return counts, nil
}

// Track increments the counter for kind. Unknown kinds leave the counters untouched.
func (t *Tracker) Track(ctx context.Context, kind string) (Counts, error) {
	counts, err := t.Counts(ctx)
	if err != nil {
		return counts, err
	}

	full, err := ResolveKind(kind)
	if err != nil {
		log.Debug().Str("kind", kind).Msg("Ignoring unknown error kind")
		return counts, nil
	}
	*counts.counter(full)++

	data, err := json.Marshal(counts)
	if err != nil {
		return counts, errors.Wrapf(err, "[errortracker.Track] marshal")
	}
	if err := t.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return counts, errors.Wrapf(err, "[errortracker.Track] store")
	}
	log.Debug().Str("kind", full).Msg("Error tracked")
	return counts, nil
}

// Reset removes all counters.
func (t *Tracker) Reset(ctx context.Context) error {
	return errors.Wrapf(t.kv.Remove(ctx, StorageKey), "[errortracker.Reset] remove")
}
