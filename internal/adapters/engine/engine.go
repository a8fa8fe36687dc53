// Package engine implements a simulated mapping engine. Maps are sqlite
// databases of keyframes and links; keyframes are added from odometry at the
// configured detection rate and loop closures are found by proximity.
package engine

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"gorm.io/gorm"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const (
	// openStatusError is returned when a database cannot be read at all
	openStatusError = -3

	initStatusLoading = 1
	initStatusDone    = 2

	// DefaultStepDelay paces long operations so progress is visible
	DefaultStepDelay = 15 * time.Millisecond
)

var _ ports.MappingEngine = (*Engine)(nil)

// Engine is a simulated ports.MappingEngine. It is safe for concurrent use:
// camera data arrives on the AR thread while jobs run on workers.
type Engine struct {
	canceled  atomic.Bool
	clock     clock.Clock
	stepDelay time.Duration

	mu            sync.Mutex
	camera        domain.CameraType
	cameraRunning bool
	db            *gorm.DB
	exported      *domain.ExportOptions
	frames        int
	lastNode      *NodeModel
	lastUpdate    time.Time
	localization  bool
	lost          bool
	mapID         int
	meshEnabled   bool
	meshTextured  bool
	nodes         int
	observer      ports.EngineObserver
	params        map[string]string
	path          string
	pausedMapping bool
	pose          r3.Vector
	view          viewState
	visualizing   bool
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock used for pacing and update times
func WithClock(clk clock.Clock) Option {
	return func(e *Engine) { e.clock = clk }
}

// WithStepDelay sets the pause between progress steps of long operations
func WithStepDelay(d time.Duration) Option {
	return func(e *Engine) { e.stepDelay = d }
}

// New creates an Engine with no database open
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:         clock.New(),
		params:        map[string]string{},
		pausedMapping: true,
		stepDelay:     DefaultStepDelay,
		view:          newViewState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetObserver registers the receiver of progress, init events and stats
func (e *Engine) SetObserver(observer ports.EngineObserver) {
	e.mu.Lock()
	e.observer = observer
	e.mu.Unlock()
}

// SetParameters merges engine parameters
func (e *Engine) SetParameters(params map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range params {
		e.params[k] = v
	}
	logging.Logger.Debug("Engine parameters updated", "count", len(params))
}

// Open loads a database. clear deletes it first; optimize checks the graph
// against RGBD/OptimizeMaxError. The result is an open status code.
func (e *Engine) Open(path string, inMemory, optimize, clear bool) int {
	e.canceled.Store(false)
	e.notify(func(o ports.EngineObserver) { o.InitEventReceived(initStatusLoading, "Loading database...") })

	e.mu.Lock()
	code, optimized, nodes := e.openLocked(path, inMemory, optimize, clear)
	e.mu.Unlock()
	if code < 0 {
		return code
	}

	if msg, ok := optimizedMessages[optimized]; ok {
		e.notify(func(o ports.EngineObserver) { o.InitEventReceived(initStatusLoading, msg) })
	}
	for i := 1; i <= nodes; i++ {
		e.step(i, nodes)
	}
	e.notify(func(o ports.EngineObserver) { o.InitEventReceived(initStatusDone, "Loading database...done!") })
	return code
}

func (e *Engine) openLocked(path string, inMemory, optimize, clear bool) (int, string, int) {
	if err := closeDatabase(e.db); err != nil {
		logging.Logger.Warn("Failed to close previous map database", "path", e.path, "error", err)
	}
	e.resetLocked()

	if clear {
		if err := removeDatabaseFiles(path); err != nil {
			logging.Logger.Error("Failed to clear map database", "path", path, "error", err)
			return openStatusError, "", 0
		}
	}

	db, err := openDatabase(path, inMemory)
	if err != nil {
		logging.Logger.Error("Failed to open map database", "path", path, "error", err)
		return openStatusError, "", 0
	}
	nodes, err := countNodes(context.Background(), db)
	if err != nil {
		closeDatabase(db)
		logging.Logger.Error("Failed to read map database", "path", path, "error", err)
		return openStatusError, "", 0
	}

	if limit := int(e.paramLocked("Rtabmap/MemoryThr", 0)); limit > 0 && nodes > limit {
		closeDatabase(db)
		logging.Logger.Warn("Map exceeds memory threshold", "path", path, "nodes", nodes, "limit", limit)
		return domain.OpenStatusOutOfMemory, "", 0
	}
	if optimize {
		if err := checkGraph(db, e.paramLocked("RGBD/OptimizeMaxError", 3)); err != nil {
			closeDatabase(db)
			logging.Logger.Warn("Graph optimization failed", "path", path, "error", err)
			return domain.OpenStatusOptimizationFailed, "", 0
		}
	}

	var last NodeModel
	if err := db.Order("id DESC").Limit(1).Find(&last).Error; err == nil && last.ID > 0 {
		e.lastNode = &last
		e.mapID = last.MapID + 1
	}

	e.db = db
	e.path = path
	e.nodes = nodes

	optimized := readMeta(db, metaOptimized)
	code := optimizedStatus[optimized]
	logging.Logger.Info("Map database opened",
		"path", path,
		"nodes", nodes,
		"in_memory", inMemory,
		"optimized", optimized)
	return code, optimized, nodes
}

func (e *Engine) resetLocked() {
	e.db = nil
	e.exported = nil
	e.lastNode = nil
	e.lastUpdate = time.Time{}
	e.lost = false
	e.mapID = 0
	e.nodes = 0
	e.path = ""
	e.visualizing = false
}

// Save writes the current map to path. Saving onto the open database only
// checkpoints it.
func (e *Engine) Save(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db == nil {
		logging.Logger.Warn("Save requested with no map open", "path", path)
		return false
	}

	if path == e.path {
		if err := e.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
			logging.Logger.Warn("Checkpoint failed", "path", path, "error", err)
		}
		return true
	}
	if err := vacuumInto(context.Background(), e.db, path); err != nil {
		logging.Logger.Error("Failed to save map", "path", path, "error", err)
		return false
	}
	logging.Logger.Info("Map saved", "path", path, "nodes", e.nodes)
	return true
}

// Recover copies what can be read of an abandoned database to toPath.
// It stops early when processing is canceled.
func (e *Engine) Recover(fromPath, toPath string) bool {
	e.canceled.Store(false)

	src, err := openExisting(fromPath)
	if err != nil {
		logging.Logger.Error("Failed to open database to recover", "path", fromPath, "error", err)
		return false
	}
	defer closeDatabase(src)

	nodes, err := countNodes(context.Background(), src)
	if err != nil {
		logging.Logger.Error("Failed to read database to recover", "path", fromPath, "error", err)
		return false
	}
	for i := 1; i <= nodes; i++ {
		if !e.step(i, nodes) {
			logging.Logger.Info("Recovery canceled", "path", fromPath)
			return false
		}
	}

	if err := vacuumInto(context.Background(), src, toPath); err != nil {
		logging.Logger.Error("Failed to write recovered database", "path", toPath, "error", err)
		return false
	}
	logging.Logger.Info("Database recovered", "from", fromPath, "to", toPath, "nodes", nodes)
	return true
}

// Close releases the open database
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameraRunning = false
	err := closeDatabase(e.db)
	e.resetLocked()
	return err
}

// Nodes returns the number of keyframes in the open map
func (e *Engine) Nodes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nodes
}

// Path returns the open database path
func (e *Engine) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

// notify calls fn with the observer, outside the engine lock
func (e *Engine) notify(fn func(ports.EngineObserver)) {
	e.mu.Lock()
	observer := e.observer
	e.mu.Unlock()
	if observer != nil {
		fn(observer)
	}
}

// step reports progress, paces the operation and returns false once
// processing was canceled
func (e *Engine) step(count, max int) bool {
	if e.canceled.Load() {
		return false
	}
	e.notify(func(o ports.EngineObserver) { o.ProgressUpdated(count, max) })
	if e.stepDelay > 0 {
		e.clock.Sleep(e.stepDelay)
	}
	return !e.canceled.Load()
}

func (e *Engine) paramLocked(key string, def float64) float64 {
	v, ok := e.params[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
