// Package health tracks whether the backend and the local session store are usable.
package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger reports a component's health; nil means healthy.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) HealthPing(ctx context.Context) error { return f(ctx) }

// Checker aggregates named pingers into one cached flag.
type Checker struct {
	healthy atomic.Int32
	names   []string
	deps    []Pinger
	timeout time.Duration
	log     zerolog.Logger
}

// NewChecker returns a Checker reporting unhealthy until the first evaluation.
func NewChecker(log zerolog.Logger, timeout time.Duration) *Checker {
	return &Checker{log: log, timeout: timeout}
}

// Add registers a dependency. Call before Start.
func (h *Checker) Add(name string, p Pinger) *Checker {
	h.names = append(h.names, name)
	h.deps = append(h.deps, p)
	return h
}

// IsHealthy returns the cached result of the last evaluation.
func (h *Checker) IsHealthy() bool { return h.healthy.Load() == 1 }

// Check pings every dependency once and updates the cached flag.
func (h *Checker) Check(ctx context.Context) bool {
	all := true
	for i, p := range h.deps {
		pctx, cancel := context.WithTimeout(ctx, h.timeout)
		err := p.HealthPing(pctx)
		cancel()
		if err != nil {
			h.log.Debug().Err(err).Str("dependency", h.names[i]).Msg("health ping failed")
			all = false
		}
	}
	cur := int32(0)
	if all {
		cur = 1
	}
	if prev := h.healthy.Swap(cur); prev != cur {
		if all {
			h.log.Info().Msg("service health: UP")
		} else {
			h.log.Error().Msg("service health: DOWN")
		}
	}
	return all
}

// Start evaluates health every interval until ctx is done.
func (h *Checker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Handler serves 200 when healthy and 503 otherwise.
func (h *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.IsHealthy() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok\n"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable\n"))
	})
}

// Backend returns a Pinger that succeeds when baseURL answers any HTTP response.
// The backend needs no token for this; a 401 or 404 still proves it is up.
func Backend(hc *http.Client, baseURL string) Pinger {
	return PingerFunc(func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return err
		}
		resp, err := hc.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	})
}
