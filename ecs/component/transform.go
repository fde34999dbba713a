package component

// Transform is a world pose. X/Z span the ground plane, Y is height and the
// facing is a ground-plane unit vector.
type Transform struct {
	X       float64
	Y       float64
	Z       float64
	FacingX float64
	FacingZ float64
}

var TransformComponent = NewComponent[Transform]()
