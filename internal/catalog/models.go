package catalog

import (
	"time"

	"posekit/internal/merge"
)

// RunSession is one session's contribution to a merge run, in merge order.
type RunSession struct {
	Position   int    `json:"position"`
	SessionID  uint32 `json:"session_id"`
	SourcePath string `json:"source_path"`
	Format     string `json:"format"`
	Frames     int    `json:"frames"`
}

// Run is one recorded merge: the merged shape plus every contributing
// session in order.
type Run struct {
	ID           string        `json:"id"`
	CreatedAt    time.Time     `json:"created_at"`
	Frames       int           `json:"frames"`
	Keypoints    int           `json:"keypoints"`
	SessionCount int           `json:"session_count"`
	Blocks       []merge.Block `json:"blocks"`
	Sessions     []RunSession  `json:"sessions,omitempty"`
}
