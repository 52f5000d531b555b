// Package terrain wraps the external terrain geometry provider behind a
// circuit breaker. Geometry queries come from the rendering layer and can
// fail; the controller prefers continued gameplay over strict physical
// accuracy, so every failure here degrades to "no collision this frame".
package terrain

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-starflight/pkg/logging"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// ErrNotReady indicates the terrain geometry has not finished loading.
// Providers return it while their meshes are still streaming in.
var ErrNotReady = errors.New("terrain geometry not ready")

// Geometry is the boundary the terrain provider implements.
type Geometry interface {
	// Raycast returns the nearest intersection along the ray within maxDist.
	// ok=false means a clean miss; a non-nil error means the query itself
	// failed and its result must not be trusted.
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (hit physics.Hit, ok bool, err error)
}

// Querier runs geometry queries through a circuit breaker so a repeatedly
// failing provider is isolated instead of being hammered every probe of
// every frame. An open breaker reads as "no collision".
type Querier struct {
	geometry Geometry
	breaker  *gobreaker.CircuitBreaker
	logger   *logging.Logger
	warned   logging.OnceLogger
}

// NewQuerier creates a Querier around the given geometry provider.
func NewQuerier(geometry Geometry) *Querier {
	logger := logging.NewLogger()

	settings := gobreaker.Settings{
		Name: "terrain-geometry",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "terrain breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Querier{
		geometry: geometry,
		breaker:  gobreaker.NewCircuitBreaker(settings),
		logger:   logger,
	}
}

// raycastResult carries a raycast outcome through the breaker.
type raycastResult struct {
	hit physics.Hit
	ok  bool
}

// Raycast satisfies physics.RaycastFunc. Query errors and an open breaker
// both report a miss; the first failure is logged as a warning, further
// failures only feed the breaker.
func (q *Querier) Raycast(origin, dir mgl64.Vec3, maxDist float64) (physics.Hit, bool) {
	if q == nil || q.geometry == nil {
		return physics.Hit{}, false
	}

	result, err := q.breaker.Execute(func() (interface{}, error) {
		hit, ok, err := q.geometry.Raycast(origin, dir, maxDist)
		if err != nil {
			return nil, err
		}
		return raycastResult{hit: hit, ok: ok}, nil
	})
	if err != nil {
		q.warned.Warn(context.Background(), q.logger,
			"terrain geometry query failed, treating as no collision",
			"error", err.Error(),
		)
		return physics.Hit{}, false
	}

	r := result.(raycastResult)
	return r.hit, r.ok
}
