// Package navigation holds forced navigations raised below the HTTP layer
// (e.g. the request client seeing a 401) until the console can act on them.
package navigation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medisys/opd-console/internal/api/metrics"
)

// Recorder is a ports.Navigator. The console has one operator, so one
// pending target is enough; a newer navigation replaces an older one.
type Recorder struct {
	mu      sync.Mutex
	pending string
	log     zerolog.Logger
}

func NewRecorder(log zerolog.Logger) *Recorder {
	return &Recorder{log: log}
}

// Navigate records path as the next place the console must go.
func (r *Recorder) Navigate(_ context.Context, path string) {
	r.mu.Lock()
	r.pending = path
	r.mu.Unlock()

	metrics.NavigationsTotal.WithLabelValues(path).Inc()
	r.log.Info().Str("path", path).Msg("navigation requested")
}

// Pending returns the recorded target without consuming it.
func (r *Recorder) Pending() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending, r.pending != ""
}

// Consume returns the recorded target and clears it.
func (r *Recorder) Consume() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pending
	r.pending = ""
	return p, p != ""
}
