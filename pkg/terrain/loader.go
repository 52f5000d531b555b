package terrain

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/logging"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// heightfieldFile is the on-disk format the asset pipeline exports: a cell
// size plus a row-major height grid.
type heightfieldFile struct {
	CellSize float64     `json:"cellSize"`
	Origin   [3]float64  `json:"origin"`
	Heights  [][]float64 `json:"heights"`
}

// Loader streams a heightfield in from disk without blocking the frame
// loop. It implements Geometry itself: queries return ErrNotReady until the
// load completes, which the Querier's breaker treats like any other query
// failure.
type Loader struct {
	mu       sync.RWMutex
	geometry *Heightfield
	loadErr  error

	logger *logging.Logger
}

// NewLoader creates an empty loader. Nothing is loaded until Load is called.
func NewLoader() *Loader {
	return &Loader{logger: logging.NewLogger()}
}

// Load starts reading the heightfield file in the background. Calling Load
// again replaces the previous geometry once the new load completes.
func (l *Loader) Load(ctx context.Context, path string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				l.logger.Error(ctx, "terrain load panicked",
					fmt.Errorf("panic: %v", r), "path", path)
			}
		}()

		geometry, err := loadHeightfield(path)

		l.mu.Lock()
		l.geometry, l.loadErr = geometry, err
		l.mu.Unlock()

		if err != nil {
			l.logger.Error(ctx, "terrain load failed", err, "path", path)
			return
		}
		l.logger.Info(ctx, "terrain loaded",
			"path", path,
			"rows", len(geometry.heights),
		)
	}()
}

// Ready reports whether geometry is available for queries.
func (l *Loader) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.geometry != nil
}

// Unload drops the current geometry, typically on surface-scene exit.
func (l *Loader) Unload() {
	l.mu.Lock()
	l.geometry, l.loadErr = nil, nil
	l.mu.Unlock()
}

// Raycast implements Geometry, delegating to the loaded heightfield.
func (l *Loader) Raycast(origin, dir mgl64.Vec3, maxDist float64) (physics.Hit, bool, error) {
	l.mu.RLock()
	geometry, loadErr := l.geometry, l.loadErr
	l.mu.RUnlock()

	if geometry == nil {
		if loadErr != nil {
			return physics.Hit{}, false, loadErr
		}
		return physics.Hit{}, false, ErrNotReady
	}
	return geometry.Raycast(origin, dir, maxDist)
}

// loadHeightfield reads and validates one heightfield file.
func loadHeightfield(path string) (*Heightfield, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read terrain file: %w", err)
	}

	var file heightfieldFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse terrain file: %w", err)
	}
	if file.CellSize <= 0 {
		return nil, fmt.Errorf("terrain file %s: cellSize must be positive", path)
	}
	if len(file.Heights) == 0 || len(file.Heights[0]) == 0 {
		return nil, fmt.Errorf("terrain file %s: empty height grid", path)
	}
	width := len(file.Heights[0])
	for i, row := range file.Heights {
		if len(row) != width {
			return nil, fmt.Errorf("terrain file %s: row %d has %d samples, want %d",
				path, i, len(row), width)
		}
	}

	origin := mgl64.Vec3{file.Origin[0], file.Origin[1], file.Origin[2]}
	return NewHeightfield(file.Heights, file.CellSize, origin), nil
}
