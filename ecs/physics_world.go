package ecs

import (
	"github.com/jakecoffman/cp"
)

const collisionTypeObstacle cp.CollisionType = 1

// ObstacleWorld owns the Chipmunk space holding the arena's static blocking
// geometry. The ground plane maps X to X and Z to Y.
type ObstacleWorld struct {
	space  *cp.Space
	shapes map[Entity]*cp.Shape
}

// NewObstacleWorld creates an empty obstacle space with no gravity.
func NewObstacleWorld() *ObstacleWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &ObstacleWorld{
		space:  space,
		shapes: make(map[Entity]*cp.Shape),
	}
}

// Space returns the underlying Chipmunk space.
func (ow *ObstacleWorld) Space() *cp.Space {
	if ow == nil {
		return nil
	}
	return ow.space
}

// AddBox registers an axis-aligned box centered on (x, z) for e, replacing
// any box e already had.
func (ow *ObstacleWorld) AddBox(e Entity, x, z, halfWidth, halfDepth float64) {
	if ow == nil || ow.space == nil || halfWidth <= 0 || halfDepth <= 0 {
		return
	}
	ow.Remove(e)
	bb := cp.BB{L: x - halfWidth, B: z - halfDepth, R: x + halfWidth, T: z + halfDepth}
	shape := cp.NewBox2(ow.space.StaticBody, bb, 0)
	shape.SetCollisionType(collisionTypeObstacle)
	ow.space.AddShape(shape)
	ow.shapes[e] = shape
}

// Remove drops e's box. It reports whether there was one.
func (ow *ObstacleWorld) Remove(e Entity) bool {
	if ow == nil {
		return false
	}
	shape, ok := ow.shapes[e]
	if !ok {
		return false
	}
	ow.space.RemoveShape(shape)
	delete(ow.shapes, e)
	return true
}

func (ow *ObstacleWorld) Len() int {
	if ow == nil {
		return 0
	}
	return len(ow.shapes)
}

// Blocked casts a segment of length along dir from origin and reports
// whether any obstacle lies on it.
func (ow *ObstacleWorld) Blocked(origin, dir cp.Vector, length float64) bool {
	if ow == nil || ow.space == nil || len(ow.shapes) == 0 || length <= 0 {
		return false
	}
	if dir.Length() < 1e-9 {
		return false
	}
	end := origin.Add(dir.Normalize().Mult(length))
	info := ow.space.SegmentQueryFirst(origin, end, 0, cp.SHAPE_FILTER_ALL)
	return info.Shape != nil
}
