package component

// TargetTag marks the entity bosses fight.
type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()

// Obstacle is a static box on the ground plane, centered on the transform.
type Obstacle struct {
	HalfWidth float64
	HalfDepth float64
}

var ObstacleComponent = NewComponent[Obstacle]()
