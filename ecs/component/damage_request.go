package component

// DamageRequest is a transient component asking the BossSystem to apply
// damage to the entity's boss before its next tick. Repeated requests in one
// tick accumulate; the system removes the component once applied.
type DamageRequest struct {
	Amount       int
	SourceEntity uint64
}

var DamageRequestComponent = NewComponent[DamageRequest]()
