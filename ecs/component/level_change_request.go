package component

// LevelChangeRequest is a one-shot request emitted when the boss dies. The
// outer loop owns level loading and removes the request once handled.
//
// Systems only emit data; they never load levels themselves.
type LevelChangeRequest struct {
	Reason string
	// Source is the entity that asked (ecs.Entity is uint64).
	Source uint64
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
