package entity

import "time"

// BlockAlignment is a derived cross-language relation between two Blocks.
// Many-to-many is permitted; alignments are disposable and rebuildable —
// nothing else in the model depends on a particular alignment surviving.
type BlockAlignment struct {
	ID          ID
	SourceBlock ID
	TargetBlock ID
	Kind        string
	Confidence  float64
	CreatedAt   time.Time
}
