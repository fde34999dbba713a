package component

// BossHealthBar is the display-side copy of a boss's health. Nothing draws it
// here; it is kept current by the boss's health observer.
type BossHealthBar struct {
	Boss    uint64
	Current int
	Max     int
	Ratio   float64
	Phase   int
	Visible bool
}

var BossHealthBarComponent = NewComponent[BossHealthBar]()
