package engine

import "time"

// NodeModel is one keyframe of the map
type NodeModel struct {
	Data  []byte
	ID    int `gorm:"primaryKey;autoIncrement:false"`
	MapID int `gorm:"not null;default:0;index:idx_map"`
	Stamp time.Time
	X     float64
	Y     float64
	Yaw   float64
	Z     float64
}

// TableName specifies the table name for GORM
func (NodeModel) TableName() string { return "nodes" }

// Link types
const (
	linkNeighbor = 0
	linkLoop     = 1
)

// LinkModel is a constraint between two nodes
type LinkModel struct {
	From int `gorm:"column:from_id;primaryKey;autoIncrement:false"`
	To   int `gorm:"column:to_id;primaryKey;autoIncrement:false"`
	Type int `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (LinkModel) TableName() string { return "links" }

// MetaModel stores database level key/values such as the optimized content
type MetaModel struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (MetaModel) TableName() string { return "meta" }

const metaOptimized = "optimized"

// Optimized content stored by an export, mapped to open status codes
var optimizedStatus = map[string]int{
	"cloud":         1,
	"mesh":          2,
	"textured_mesh": 3,
}

var optimizedMessages = map[string]string{
	"cloud":         "Loading optimized cloud...done!",
	"mesh":          "Loading optimized mesh...done!",
	"textured_mesh": "Loading optimized texture mesh...done!",
}
