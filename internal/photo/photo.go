// Package photo manages the session photo collection: importing uploaded
// images and assigning each photo its fixed display positions.
package photo

import "time"

// Vec3 is a position or Euler rotation in the display's scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Photo is one displayed image. Positions and rotation are assigned once
// at import time and never recalculated; the renderer interpolates between
// them as the display mode changes.
type Photo struct {
	ID              string    `json:"id"`
	SourceURL       string    `json:"sourceUrl"`
	TreePosition    Vec3      `json:"treePosition"`
	ScatterPosition Vec3      `json:"scatterPosition"`
	RestRotation    Vec3      `json:"restRotation"`
	CreatedAt       time.Time `json:"createdAt"`
}
