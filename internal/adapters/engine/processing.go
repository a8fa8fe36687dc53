package engine

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const (
	// polygonsPerNode is the mesh size contributed by one node
	polygonsPerNode = 400
	textureSide     = 64
)

type linkKey struct {
	from, to int
}

// CancelProcessing asks the running operation to stop at its next step
func (e *Engine) CancelProcessing() {
	e.canceled.Store(true)
	logging.Logger.Info("Processing cancel requested")
}

// PostProcessing runs an optimization approach over the map. Approaches that
// search for loop closures return how many they added.
func (e *Engine) PostProcessing(approach domain.OptimizationApproach) int {
	e.canceled.Store(false)

	e.mu.Lock()
	db := e.db
	e.mu.Unlock()
	if db == nil {
		logging.Logger.Warn("Post-processing requested with no map open")
		return 0
	}

	var nodes []NodeModel
	if err := db.Select("id", "map_id", "x", "y", "z").Order("id").Find(&nodes).Error; err != nil {
		logging.Logger.Error("Failed to load graph", "error", err)
		return 0
	}
	var links []LinkModel
	if err := db.Find(&links).Error; err != nil {
		logging.Logger.Error("Failed to load graph", "error", err)
		return 0
	}

	detect := approach == domain.ApproachStandard || approach == domain.ApproachDetectMoreLoops
	linked := lo.SliceToMap(links, func(l LinkModel) (linkKey, bool) {
		return linkKey{from: l.From, to: l.To}, true
	})

	var added []LinkModel
	for i, node := range nodes {
		if !e.step(i+1, len(nodes)) {
			logging.Logger.Info("Post-processing canceled", "approach", approach.Label())
			return domain.PostProcessingCanceled
		}
		if !detect {
			continue
		}
		for _, other := range nodes[i+1:] {
			if other.ID-node.ID <= loopMinGap || linked[linkKey{from: node.ID, to: other.ID}] {
				continue
			}
			if node.position().Distance(other.position()) <= 2*loopRadius {
				added = append(added, LinkModel{From: node.ID, To: other.ID, Type: linkLoop})
				linked[linkKey{from: node.ID, to: other.ID}] = true
			}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(added) > 0 {
			if err := tx.Create(&added).Error; err != nil {
				return err
			}
		}
		return deleteMeta(tx, metaOptimized)
	})
	if err != nil {
		logging.Logger.Error("Failed to store optimized graph", "error", err)
		return 0
	}
	e.exported = nil

	logging.Logger.Info("Post-processing done", "approach", approach.Label(), "loop_closures", len(added))
	return len(added)
}

// ExportMesh assembles the cloud or mesh described by opts. The result is
// remembered in the database so it shows right away when reopened.
func (e *Engine) ExportMesh(opts domain.ExportOptions) bool {
	e.canceled.Store(false)

	e.mu.Lock()
	db, nodes := e.db, e.nodes
	e.mu.Unlock()
	if db == nil || nodes == 0 {
		logging.Logger.Warn("Nothing to export", "nodes", nodes)
		return false
	}

	for i := 1; i <= nodes; i++ {
		if !e.step(i, nodes) {
			logging.Logger.Info("Export canceled")
			return false
		}
	}

	e.mu.Lock()
	if err := writeMeta(db, metaOptimized, opts.ViewMode().String()); err != nil {
		e.mu.Unlock()
		logging.Logger.Error("Failed to store export", "error", err)
		return false
	}
	e.exported = &opts
	stats := domain.Stats{
		Nodes:  e.nodes,
		Points: e.nodes * pointsPerNode(e.paramLocked("App/PointCloudDensity", 1)),
	}
	e.mu.Unlock()

	if opts.Meshing {
		stats.Polygons = nodes * polygonsPerNode
		if opts.OptimizedMaxPolygons > 0 && stats.Polygons > opts.OptimizedMaxPolygons {
			stats.Polygons = opts.OptimizedMaxPolygons
		}
	}
	e.notify(func(o ports.EngineObserver) { o.StatsUpdated(stats) })

	logging.Logger.Info("Export assembled", "view_mode", opts.ViewMode(), "polygons", stats.Polygons)
	return true
}

// PostExportation shows or hides the assembled export
func (e *Engine) PostExportation(visualize bool) {
	e.mu.Lock()
	e.visualizing = visualize
	e.mu.Unlock()
}

// WriteExportedMesh writes the last export into dir: an OBJ for meshes, a
// PLY for clouds
func (e *Engine) WriteExportedMesh(dir, name string) bool {
	e.mu.Lock()
	db, exported := e.db, e.exported
	e.mu.Unlock()
	if db == nil || exported == nil {
		logging.Logger.Warn("No export to write", "name", name)
		return false
	}

	var nodes []NodeModel
	if err := db.Select("id", "x", "y", "z").Order("id").Find(&nodes).Error; err != nil {
		logging.Logger.Error("Failed to load export", "error", err)
		return false
	}

	var err error
	if exported.Meshing {
		err = writeOBJ(dir, name, nodes, exported.Textured())
	} else {
		err = writePLY(filepath.Join(dir, name+".ply"), nodes)
	}
	if err != nil {
		logging.Logger.Error("Failed to write export", "dir", dir, "name", name, "error", err)
		return false
	}
	logging.Logger.Info("Export written", "dir", dir, "name", name)
	return true
}

func writeOBJ(dir, name string, nodes []NodeModel, textured bool) error {
	return writeFile(filepath.Join(dir, name+".obj"), func(w *bufio.Writer) {
		if textured {
			fmt.Fprintf(w, "mtllib %s.mtl\nusemtl material0\n", name)
		}
		for _, n := range nodes {
			fmt.Fprintf(w, "v %f %f %f\n", n.X, n.Y, n.Z)
		}
		for i := 3; i <= len(nodes); i++ {
			fmt.Fprintf(w, "f %d %d %d\n", i-2, i-1, i)
		}
	}, func() error {
		if !textured {
			return nil
		}
		return writeFile(filepath.Join(dir, name+".mtl"), func(w *bufio.Writer) {
			fmt.Fprintf(w, "newmtl material0\nKa 1 1 1\nKd 1 1 1\nmap_Kd %s.jpg\n", name)
		}, func() error {
			return writeTexture(filepath.Join(dir, name+".jpg"))
		})
	})
}

func writePLY(path string, nodes []NodeModel) error {
	return writeFile(path, func(w *bufio.Writer) {
		fmt.Fprintf(w, "ply\nformat ascii 1.0\nelement vertex %d\n", len(nodes))
		fmt.Fprint(w, "property float x\nproperty float y\nproperty float z\nend_header\n")
		for _, n := range nodes {
			fmt.Fprintf(w, "%f %f %f\n", n.X, n.Y, n.Z)
		}
	}, nil)
}

// writeTexture writes a neutral texture atlas
func writeTexture(path string) error {
	img := image.NewGray(image.Rect(0, 0, textureSide, textureSide))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeFile writes body to path then runs next
func writeFile(path string, body func(w *bufio.Writer), next func() error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	body(w)
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if next != nil {
		return next()
	}
	return nil
}
