package publish

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"

	"github.com/git-pkgs/manifests/client"
	"github.com/git-pkgs/manifests/internal/core"
)

// CircuitBreakerPublisher wraps a Publisher with per-index circuit breakers.
type CircuitBreakerPublisher struct {
	publisher *Publisher
	breakers  map[string]*circuit.Breaker
	mu        sync.RWMutex
}

// NewCircuitBreakerPublisher creates a circuit breaker wrapper for a publisher.
func NewCircuitBreakerPublisher(p *Publisher) *CircuitBreakerPublisher {
	return &CircuitBreakerPublisher{
		publisher: p,
		breakers:  make(map[string]*circuit.Breaker),
	}
}

// getBreaker returns or creates a circuit breaker for the given index host.
func (cbp *CircuitBreakerPublisher) getBreaker(index string) *circuit.Breaker {
	cbp.mu.RLock()
	breaker, exists := cbp.breakers[index]
	cbp.mu.RUnlock()

	if exists {
		return breaker
	}

	cbp.mu.Lock()
	defer cbp.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := cbp.breakers[index]; exists {
		return breaker
	}

	// Trips after 5 consecutive failures
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	opts := &circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	}
	breaker = circuit.NewBreakerWithOptions(opts)

	cbp.breakers[index] = breaker
	return breaker
}

// Upload wraps the underlying publisher's Upload with circuit breaker logic.
func (cbp *CircuitBreakerPublisher) Upload(ctx context.Context, m *core.Manifest, distPath string) error {
	index := extractIndex(cbp.publisher.URLs().Upload())
	breaker := cbp.getBreaker(index)

	if !breaker.Ready() {
		return fmt.Errorf("circuit breaker open for index %s: %w", index, client.ErrIndexDown)
	}

	return breaker.Call(func() error {
		return cbp.publisher.Upload(ctx, m, distPath)
	}, 0)
}

// Check wraps the underlying publisher's Check with circuit breaker logic.
func (cbp *CircuitBreakerPublisher) Check(ctx context.Context, name, version string) (*Availability, error) {
	index := extractIndex(cbp.publisher.URLs().Base())
	breaker := cbp.getBreaker(index)

	if !breaker.Ready() {
		return nil, fmt.Errorf("circuit breaker open for index %s: %w", index, client.ErrIndexDown)
	}

	var avail *Availability
	err := breaker.Call(func() error {
		var checkErr error
		avail, checkErr = cbp.publisher.Check(ctx, name, version)
		return checkErr
	}, 0)

	if err != nil {
		return nil, err
	}
	return avail, nil
}

// extractIndex extracts an index identifier from a URL for breaker grouping.
func extractIndex(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		// Fallback to simple truncation
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}

// GetBreakerState returns the current state of circuit breakers (for health checks).
func (cbp *CircuitBreakerPublisher) GetBreakerState() map[string]string {
	cbp.mu.RLock()
	defer cbp.mu.RUnlock()

	states := make(map[string]string)
	for index, breaker := range cbp.breakers {
		if breaker.Tripped() {
			states[index] = "open"
		} else {
			states[index] = "closed"
		}
	}
	return states
}
