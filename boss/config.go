package boss

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownVariant   = errors.New("boss: unknown ultimate variant")
	ErrUnknownSpawnKind = errors.New("boss: unknown spawn kind")
	ErrUnknownTimer     = errors.New("boss: unknown timer")
)

// Variant selects how the ultimate resolves after its telegraph.
type Variant string

const (
	VariantMelee     Variant = "melee"
	VariantRanged    Variant = "ranged"
	VariantAlternate Variant = "alternate"
	VariantScript    Variant = "script"
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantMelee, VariantRanged, VariantAlternate, VariantScript:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// SpawnKind names the world entity a spawn request should create.
type SpawnKind string

const (
	SpawnProjectile SpawnKind = "projectile"
	SpawnShockwave  SpawnKind = "shockwave"
	SpawnLaser      SpawnKind = "laser"
)

// Arena is the rectangle on the ground plane the boss may never leave.
type Arena struct {
	MinX float64
	MaxX float64
	MinZ float64
	MaxZ float64
}

func (a Arena) Clamp(p Vec3) Vec3 {
	p.X = math.Max(a.MinX, math.Min(a.MaxX, p.X))
	p.Z = math.Max(a.MinZ, math.Min(a.MaxZ, p.Z))
	return p
}

func (a Arena) Contains(p Vec3) bool {
	return p.X >= a.MinX && p.X <= a.MaxX && p.Z >= a.MinZ && p.Z <= a.MaxZ
}

// Config holds every tunable of the boss. Durations are in seconds, speeds in
// units per second.
type Config struct {
	Name      string
	MaxHealth int

	MoveSpeed       float64
	DetectionRadius float64
	AttackRange     float64

	MeleeCooldown float64
	MeleeDamage   int
	WindUpTime    float64
	ActiveTime    float64
	RecoveryTime  float64

	RangedCooldown     float64
	Phase2RangedScale  float64
	Phase3RangedScale  float64
	RapidFireSpreadDeg float64

	DesiredRange      float64
	RetreatSpeedScale float64

	MeleeBuffer          float64
	ChaseThreshold       float64
	AggressiveSpeedScale float64

	UltimateCooldown     float64
	TelegraphTime        float64
	UltimateVariant      Variant
	UltimateScript       []byte
	HeavyDamage          int
	HeavyActiveTime      float64
	UltimateRecoveryTime float64

	// Phase thresholds are inclusive. Phase 3 is checked first, so a
	// Phase3Threshold at or above Phase2Threshold skips phase 2 entirely.
	Phase2Threshold int
	Phase3Threshold int

	KnockbackForce float64
	StunDuration   float64

	Arena         Arena
	ProbeLength   float64
	AvoidAngleDeg float64

	SpawnOffset float64
	SpawnHeight float64

	// ArmedOnSpawn lists the timers that start at their full cooldown; the
	// rest start ready.
	ArmedOnSpawn []TimerID
}

// DefaultConfig returns the tuning of the shipped arena boss.
func DefaultConfig() Config {
	return Config{
		Name:      "boss",
		MaxHealth: 100,

		MoveSpeed:       3,
		DetectionRadius: 10,
		AttackRange:     2,

		MeleeCooldown: 2,
		MeleeDamage:   10,
		WindUpTime:    0.2,
		ActiveTime:    0.25,
		RecoveryTime:  0,

		RangedCooldown:     3,
		Phase2RangedScale:  0.7,
		Phase3RangedScale:  0.4,
		RapidFireSpreadDeg: 0,

		DesiredRange:      7,
		RetreatSpeedScale: 1.5,

		MeleeBuffer:          1,
		ChaseThreshold:       5,
		AggressiveSpeedScale: 2,

		UltimateCooldown:     12,
		TelegraphTime:        1,
		UltimateVariant:      VariantRanged,
		HeavyDamage:          25,
		HeavyActiveTime:      0.5,
		UltimateRecoveryTime: 1,

		Phase2Threshold: 50,
		Phase3Threshold: 20,

		KnockbackForce: 8,
		StunDuration:   0.3,

		Arena:         Arena{MinX: -3, MaxX: 3, MinZ: -3, MaxZ: 3},
		ProbeLength:   1.5,
		AvoidAngleDeg: 90,

		SpawnOffset: 1,
		SpawnHeight: 1,

		ArmedOnSpawn: []TimerID{TimerUltimate},
	}
}

func ParseSpawnKind(s string) (SpawnKind, error) {
	switch k := SpawnKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SpawnProjectile, SpawnShockwave, SpawnLaser:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSpawnKind, s)
	}
}
