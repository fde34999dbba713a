package boss

// PhasePolicy maps health to a phase. Thresholds are inclusive and checked
// from the most severe phase down.
type PhasePolicy struct {
	Phase2Threshold int
	Phase3Threshold int
}

func NewPhasePolicy(cfg Config) PhasePolicy {
	return PhasePolicy{Phase2Threshold: cfg.Phase2Threshold, Phase3Threshold: cfg.Phase3Threshold}
}

// Evaluate returns the phase for current health given the phase already
// reached. The result is never lower than current.
func (p PhasePolicy) Evaluate(health int, current Phase) Phase {
	next := Phase1
	if health <= p.Phase3Threshold {
		next = Phase3
	} else if health <= p.Phase2Threshold {
		next = Phase2
	}
	if next < current {
		return current
	}
	return next
}
