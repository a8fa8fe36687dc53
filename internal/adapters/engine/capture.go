package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const (
	// loopRadius is the distance under which a revisited place closes a loop
	loopRadius = 0.3
	// loopMinGap keeps the most recent nodes out of loop closure candidates
	loopMinGap = 10
	// nodePayloadSize stands in for the images and depth stored per node
	nodePayloadSize = 16 << 10
	// basePointsPerNode is the cloud size of a node at density 1
	basePointsPerNode = 12000
)

func (n NodeModel) position() r3.Vector {
	return r3.Vector{X: n.X, Y: n.Y, Z: n.Z}
}

// StartCamera starts feeding the map. It fails when no database is open.
func (e *Engine) StartCamera() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db == nil {
		logging.Logger.Warn("Camera started with no map open")
		return false
	}
	e.cameraRunning = true
	e.lastUpdate = time.Time{}
	return true
}

// StopCamera stops feeding the map
func (e *Engine) StopCamera() {
	e.mu.Lock()
	e.cameraRunning = false
	e.mu.Unlock()
}

// SetPausedMapping stops or resumes adding nodes
func (e *Engine) SetPausedMapping(paused bool) {
	e.mu.Lock()
	e.pausedMapping = paused
	e.mu.Unlock()
}

// SetLocalizationMode matches frames against the map without extending it
func (e *Engine) SetLocalizationMode(enabled bool) {
	e.mu.Lock()
	e.localization = enabled
	e.mu.Unlock()
}

// NotifyLost starts a new map for the nodes added after tracking returns
func (e *Engine) NotifyLost() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lost {
		return
	}
	e.lost = true
	e.mapID++
	logging.Logger.Debug("Odometry lost", "next_map", e.mapID)
}

// PostOdometry feeds one tracked frame
func (e *Engine) PostOdometry(frame domain.Frame) {
	e.mu.Lock()
	stats, updated := e.updateLocked(frame)
	e.mu.Unlock()

	if updated {
		e.notify(func(o ports.EngineObserver) { o.StatsUpdated(stats) })
	}
}

func (e *Engine) updateLocked(frame domain.Frame) (domain.Stats, bool) {
	if e.db == nil || !e.cameraRunning {
		return domain.Stats{}, false
	}
	e.pose = frame.Position
	e.lost = false
	if e.pausedMapping {
		return domain.Stats{}, false
	}

	rate := e.paramLocked("Rtabmap/DetectionRate", 1)
	if rate > 0 && !e.lastUpdate.IsZero() && frame.Stamp.Sub(e.lastUpdate) < time.Duration(float64(time.Second)/rate) {
		return domain.Stats{}, false
	}
	e.lastUpdate = frame.Stamp
	begin := e.clock.Now()

	nextID := 1
	if e.lastNode != nil {
		nextID = e.lastNode.ID + 1
	}
	match, value, found := e.nearestLocked(frame.Position, nextID-loopMinGap)
	found = found && value >= e.paramLocked("Rtabmap/LoopThr", 0.11)

	stats := domain.Stats{}
	if found {
		stats.LoopClosureID = match.ID
		stats.HighestHypothesisID = match.ID
		stats.HighestHypothesisValue = value
		stats.Inliers = int(e.paramLocked("Vis/MinInliers", 25)) + int(value*100)
		stats.Matches = stats.Inliers * 2
	}

	if !e.localization {
		node := NodeModel{
			Data:  make([]byte, nodePayloadSize),
			ID:    nextID,
			MapID: e.mapID,
			Stamp: frame.Stamp,
			X:     frame.Position.X,
			Y:     frame.Position.Y,
			Yaw:   frame.Yaw,
			Z:     frame.Position.Z,
		}
		err := e.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&node).Error; err != nil {
				return err
			}
			if e.lastNode != nil && e.lastNode.MapID == node.MapID {
				if err := tx.Create(&LinkModel{From: e.lastNode.ID, To: node.ID, Type: linkNeighbor}).Error; err != nil {
					return err
				}
			}
			if found {
				return tx.Create(&LinkModel{From: match.ID, To: node.ID, Type: linkLoop}).Error
			}
			return nil
		})
		if err != nil {
			logging.Logger.Error("Failed to add node", "id", node.ID, "error", err)
			stats.Rejected = 1
			return stats, true
		}
		node.Data = nil
		e.lastNode = &node
		e.nodes++
	}

	stats.Nodes = e.nodes
	stats.Words = e.nodes * int(e.paramLocked("Kp/MaxFeatures", 400))
	stats.Points = e.nodes * pointsPerNode(e.paramLocked("App/PointCloudDensity", 1))
	stats.FPS = rate
	stats.UpdateTime = e.clock.Since(begin)
	return stats, true
}

// nearestLocked returns the closest node with an id up to maxID and how
// strongly it matches the position
func (e *Engine) nearestLocked(p r3.Vector, maxID int) (NodeModel, float64, bool) {
	if maxID < 1 {
		return NodeModel{}, 0, false
	}

	var candidates []NodeModel
	err := e.db.Select("id", "map_id", "x", "y", "z").
		Where("id <= ?", maxID).
		Where("x BETWEEN ? AND ?", p.X-loopRadius, p.X+loopRadius).
		Where("y BETWEEN ? AND ?", p.Y-loopRadius, p.Y+loopRadius).
		Where("z BETWEEN ? AND ?", p.Z-loopRadius, p.Z+loopRadius).
		Find(&candidates).Error
	if err != nil || len(candidates) == 0 {
		return NodeModel{}, 0, false
	}

	best := lo.MinBy(candidates, func(a, b NodeModel) bool {
		return a.position().Distance(p) < b.position().Distance(p)
	})
	dist := best.position().Distance(p)
	if dist > loopRadius {
		return NodeModel{}, 0, false
	}
	return best, 1 - dist/loopRadius, true
}

// checkGraph fails when a loop closure joins nodes further apart than maxError
func checkGraph(db *gorm.DB, maxError float64) error {
	var nodes []NodeModel
	if err := db.Select("id", "x", "y", "z").Find(&nodes).Error; err != nil {
		return err
	}
	var loops []LinkModel
	if err := db.Where("type = ?", linkLoop).Find(&loops).Error; err != nil {
		return err
	}

	byID := lo.KeyBy(nodes, func(n NodeModel) int { return n.ID })
	for _, link := range loops {
		from, okFrom := byID[link.From]
		to, okTo := byID[link.To]
		if !okFrom || !okTo {
			return fmt.Errorf("loop closure %d->%d references a missing node", link.From, link.To)
		}
		if d := from.position().Distance(to.position()); d > maxError {
			return fmt.Errorf("loop closure %d->%d error %.2f exceeds %.2f", link.From, link.To, d, maxError)
		}
	}
	return nil
}

func pointsPerNode(density float64) int {
	return int(basePointsPerNode / math.Max(density, 1))
}
