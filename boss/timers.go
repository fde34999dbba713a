package boss

import (
	"fmt"
	"strings"
)

// TimerID names a cooldown in the timer bank.
type TimerID int

const (
	TimerMelee TimerID = iota
	TimerRanged
	TimerUltimate
	timerCount
)

func (id TimerID) String() string {
	switch id {
	case TimerMelee:
		return "melee"
	case TimerRanged:
		return "ranged"
	case TimerUltimate:
		return "ultimate"
	default:
		return fmt.Sprintf("timer(%d)", int(id))
	}
}

func ParseTimerID(s string) (TimerID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "melee", "attack":
		return TimerMelee, nil
	case "ranged", "projectile":
		return TimerRanged, nil
	case "ultimate":
		return TimerUltimate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimer, s)
	}
}

// TimerBank holds the independent action cooldowns. An action is eligible
// once its timer is at or below zero.
type TimerBank struct {
	remaining [timerCount]float64
}

// NewTimerBank arms the timers listed in cfg.ArmedOnSpawn with their full
// cooldown and leaves the others ready.
func NewTimerBank(cfg Config) *TimerBank {
	b := &TimerBank{}
	for _, id := range cfg.ArmedOnSpawn {
		b.Reset(id, cooldownFor(cfg, id))
	}
	return b
}

func cooldownFor(cfg Config, id TimerID) float64 {
	switch id {
	case TimerMelee:
		return cfg.MeleeCooldown
	case TimerRanged:
		return cfg.RangedCooldown
	case TimerUltimate:
		return cfg.UltimateCooldown
	}
	return 0
}

// Tick counts every timer down by dt, stopping at zero.
func (b *TimerBank) Tick(dt float64) {
	for i := range b.remaining {
		if b.remaining[i] <= 0 {
			continue
		}
		b.remaining[i] -= dt
		if b.remaining[i] < 0 {
			b.remaining[i] = 0
		}
	}
}

func (b *TimerBank) Ready(id TimerID) bool {
	if id < 0 || id >= timerCount {
		return false
	}
	return b.remaining[id] <= timeEpsilon
}

func (b *TimerBank) Reset(id TimerID, seconds float64) {
	if id < 0 || id >= timerCount {
		return
	}
	b.remaining[id] = seconds
}

func (b *TimerBank) Remaining(id TimerID) float64 {
	if id < 0 || id >= timerCount {
		return 0
	}
	return b.remaining[id]
}

// timeEpsilon absorbs float drift from summing fixed tick lengths.
const timeEpsilon = 1e-9

func reached(elapsed, duration float64) bool {
	return elapsed+timeEpsilon >= duration
}
