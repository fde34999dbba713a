package prefabs

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/milk9111/bossarena/boss"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptySpec   = errors.New("prefabs: empty spec")
	ErrBadLifetime = errors.New("lifetime must be positive")
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over spec. Keys missing from the file keep
// whatever spec already held, so callers can pre-fill defaults.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := decodeInto(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

func decodeInto[T any](data []byte, spec *T) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptySpec
	}
	return yaml.Unmarshal(data, spec)
}

type BossSpec struct {
	Name         string               `yaml:"name"`
	MaxHealth    int                  `yaml:"max_health"`
	ArmedOnSpawn []string             `yaml:"armed_on_spawn"`
	Movement     MovementSpec         `yaml:"movement"`
	Melee        MeleeSpec            `yaml:"melee"`
	Ranged       RangedSpec           `yaml:"ranged"`
	Aggression   AggressionSpec       `yaml:"aggression"`
	Ultimate     UltimateSpec         `yaml:"ultimate"`
	Phases       PhaseSpec            `yaml:"phases"`
	HitReaction  HitReactionSpec      `yaml:"hit_reaction"`
	Arena        ArenaBoundsSpec      `yaml:"arena"`
	SpawnPoint   SpawnPointSpec       `yaml:"spawn_point"`
	Spawns       map[string]SpawnSpec `yaml:"spawns"`
}

type MovementSpec struct {
	Speed           float64 `yaml:"speed"`
	DetectionRadius float64 `yaml:"detection_radius"`
	AttackRange     float64 `yaml:"attack_range"`
	ProbeLength     float64 `yaml:"probe_length"`
	AvoidAngleDeg   float64 `yaml:"avoid_angle_deg"`
}

type MeleeSpec struct {
	Cooldown float64 `yaml:"cooldown"`
	Damage   int     `yaml:"damage"`
	WindUp   float64 `yaml:"wind_up"`
	Active   float64 `yaml:"active"`
	Recovery float64 `yaml:"recovery"`
}

type RangedSpec struct {
	Cooldown     float64 `yaml:"cooldown"`
	Phase2Scale  float64 `yaml:"phase2_scale"`
	Phase3Scale  float64 `yaml:"phase3_scale"`
	SpreadDeg    float64 `yaml:"spread_deg"`
	DesiredRange float64 `yaml:"desired_range"`
	RetreatScale float64 `yaml:"retreat_scale"`
}

type AggressionSpec struct {
	MeleeBuffer    float64 `yaml:"melee_buffer"`
	ChaseThreshold float64 `yaml:"chase_threshold"`
	SpeedScale     float64 `yaml:"speed_scale"`
}

type UltimateSpec struct {
	Cooldown    float64 `yaml:"cooldown"`
	Telegraph   float64 `yaml:"telegraph"`
	Variant     string  `yaml:"variant"`
	Script      string  `yaml:"script"`
	HeavyDamage int     `yaml:"heavy_damage"`
	HeavyActive float64 `yaml:"heavy_active"`
	Recovery    float64 `yaml:"recovery"`
}

type PhaseSpec struct {
	Phase2Threshold int `yaml:"phase2_threshold"`
	Phase3Threshold int `yaml:"phase3_threshold"`
}

type HitReactionSpec struct {
	KnockbackForce float64 `yaml:"knockback_force"`
	StunDuration   float64 `yaml:"stun_duration"`
}

type ArenaBoundsSpec struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

type SpawnPointSpec struct {
	Offset float64 `yaml:"offset"`
	Height float64 `yaml:"height"`
}

// SpawnSpec describes one spawnable entity. Its fields line up with
// entity.SpawnDescriptor so the two convert directly.
type SpawnSpec struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Damage   int     `yaml:"damage"`
}

// DefaultBossSpec mirrors boss.DefaultConfig plus the default spawn table.
func DefaultBossSpec() BossSpec {
	cfg := boss.DefaultConfig()
	armed := make([]string, 0, len(cfg.ArmedOnSpawn))
	for _, id := range cfg.ArmedOnSpawn {
		armed = append(armed, id.String())
	}
	return BossSpec{
		Name:         cfg.Name,
		MaxHealth:    cfg.MaxHealth,
		ArmedOnSpawn: armed,
		Movement: MovementSpec{
			Speed:           cfg.MoveSpeed,
			DetectionRadius: cfg.DetectionRadius,
			AttackRange:     cfg.AttackRange,
			ProbeLength:     cfg.ProbeLength,
			AvoidAngleDeg:   cfg.AvoidAngleDeg,
		},
		Melee: MeleeSpec{
			Cooldown: cfg.MeleeCooldown,
			Damage:   cfg.MeleeDamage,
			WindUp:   cfg.WindUpTime,
			Active:   cfg.ActiveTime,
			Recovery: cfg.RecoveryTime,
		},
		Ranged: RangedSpec{
			Cooldown:     cfg.RangedCooldown,
			Phase2Scale:  cfg.Phase2RangedScale,
			Phase3Scale:  cfg.Phase3RangedScale,
			SpreadDeg:    cfg.RapidFireSpreadDeg,
			DesiredRange: cfg.DesiredRange,
			RetreatScale: cfg.RetreatSpeedScale,
		},
		Aggression: AggressionSpec{
			MeleeBuffer:    cfg.MeleeBuffer,
			ChaseThreshold: cfg.ChaseThreshold,
			SpeedScale:     cfg.AggressiveSpeedScale,
		},
		Ultimate: UltimateSpec{
			Cooldown:    cfg.UltimateCooldown,
			Telegraph:   cfg.TelegraphTime,
			Variant:     string(cfg.UltimateVariant),
			HeavyDamage: cfg.HeavyDamage,
			HeavyActive: cfg.HeavyActiveTime,
			Recovery:    cfg.UltimateRecoveryTime,
		},
		Phases: PhaseSpec{
			Phase2Threshold: cfg.Phase2Threshold,
			Phase3Threshold: cfg.Phase3Threshold,
		},
		HitReaction: HitReactionSpec{
			KnockbackForce: cfg.KnockbackForce,
			StunDuration:   cfg.StunDuration,
		},
		Arena: ArenaBoundsSpec{
			MinX: cfg.Arena.MinX,
			MaxX: cfg.Arena.MaxX,
			MinZ: cfg.Arena.MinZ,
			MaxZ: cfg.Arena.MaxZ,
		},
		SpawnPoint: SpawnPointSpec{Offset: cfg.SpawnOffset, Height: cfg.SpawnHeight},
		Spawns: map[string]SpawnSpec{
			string(boss.SpawnProjectile): {Speed: 10, Lifetime: 3, Damage: 5},
			string(boss.SpawnShockwave):  {Speed: 12, Lifetime: 1.2, Damage: 15},
			string(boss.SpawnLaser):      {Speed: 25, Lifetime: 2, Damage: 20},
		},
	}
}

// LoadBossSpec reads filename (boss.yaml when empty) over the defaults.
func LoadBossSpec(filename string) (*BossSpec, error) {
	if filename == "" {
		filename = "boss.yaml"
	}
	spec := DefaultBossSpec()
	if err := LoadSpecInto(filename, &spec); err != nil {
		return nil, err
	}
	spec.fillSpawnDefaults()
	return &spec, nil
}

// ParseBossSpec decodes raw yaml over the defaults.
func ParseBossSpec(data []byte) (*BossSpec, error) {
	spec := DefaultBossSpec()
	if err := decodeInto(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal boss spec: %w", err)
	}
	spec.fillSpawnDefaults()
	return &spec, nil
}

// fillSpawnDefaults restores zero fields of known spawn kinds. yaml replaces
// a map entry whole, so a partial entry would otherwise lose its lifetime.
func (s *BossSpec) fillSpawnDefaults() {
	defaults := DefaultBossSpec().Spawns
	for name, spawn := range s.Spawns {
		def, ok := defaults[name]
		if !ok {
			continue
		}
		if spawn.Speed == 0 {
			spawn.Speed = def.Speed
		}
		if spawn.Lifetime == 0 {
			spawn.Lifetime = def.Lifetime
		}
		if spawn.Damage == 0 {
			spawn.Damage = def.Damage
		}
		s.Spawns[name] = spawn
	}
}

// Config converts the spec into controller tuning. A script variant loads
// its tengo source here.
func (s *BossSpec) Config() (boss.Config, error) {
	variant, err := boss.ParseVariant(s.Ultimate.Variant)
	if err != nil {
		return boss.Config{}, fmt.Errorf("prefabs: boss %s: %w", s.Name, err)
	}

	armed := make([]boss.TimerID, 0, len(s.ArmedOnSpawn))
	for _, name := range s.ArmedOnSpawn {
		id, err := boss.ParseTimerID(name)
		if err != nil {
			return boss.Config{}, fmt.Errorf("prefabs: boss %s: armed_on_spawn: %w", s.Name, err)
		}
		armed = append(armed, id)
	}

	cfg := boss.Config{
		Name:      s.Name,
		MaxHealth: s.MaxHealth,

		MoveSpeed:       s.Movement.Speed,
		DetectionRadius: s.Movement.DetectionRadius,
		AttackRange:     s.Movement.AttackRange,
		ProbeLength:     s.Movement.ProbeLength,
		AvoidAngleDeg:   s.Movement.AvoidAngleDeg,

		MeleeCooldown: s.Melee.Cooldown,
		MeleeDamage:   s.Melee.Damage,
		WindUpTime:    s.Melee.WindUp,
		ActiveTime:    s.Melee.Active,
		RecoveryTime:  s.Melee.Recovery,

		RangedCooldown:     s.Ranged.Cooldown,
		Phase2RangedScale:  s.Ranged.Phase2Scale,
		Phase3RangedScale:  s.Ranged.Phase3Scale,
		RapidFireSpreadDeg: s.Ranged.SpreadDeg,
		DesiredRange:       s.Ranged.DesiredRange,
		RetreatSpeedScale:  s.Ranged.RetreatScale,

		MeleeBuffer:          s.Aggression.MeleeBuffer,
		ChaseThreshold:       s.Aggression.ChaseThreshold,
		AggressiveSpeedScale: s.Aggression.SpeedScale,

		UltimateCooldown:     s.Ultimate.Cooldown,
		TelegraphTime:        s.Ultimate.Telegraph,
		UltimateVariant:      variant,
		HeavyDamage:          s.Ultimate.HeavyDamage,
		HeavyActiveTime:      s.Ultimate.HeavyActive,
		UltimateRecoveryTime: s.Ultimate.Recovery,

		Phase2Threshold: s.Phases.Phase2Threshold,
		Phase3Threshold: s.Phases.Phase3Threshold,

		KnockbackForce: s.HitReaction.KnockbackForce,
		StunDuration:   s.HitReaction.StunDuration,

		Arena: boss.Arena{
			MinX: s.Arena.MinX,
			MaxX: s.Arena.MaxX,
			MinZ: s.Arena.MinZ,
			MaxZ: s.Arena.MaxZ,
		},

		SpawnOffset: s.SpawnPoint.Offset,
		SpawnHeight: s.SpawnPoint.Height,

		ArmedOnSpawn: armed,
	}

	if variant == boss.VariantScript {
		src, err := LoadScript(s.Ultimate.Script)
		if err != nil {
			return boss.Config{}, fmt.Errorf("prefabs: boss %s: load script %q: %w", s.Name, s.Ultimate.Script, err)
		}
		cfg.UltimateScript = src
	}
	return cfg, nil
}

// SpawnTable validates and keys the spawn specs by kind. Every spawned
// entity must expire, so a non-positive lifetime is an error.
func (s *BossSpec) SpawnTable() (map[boss.SpawnKind]SpawnSpec, error) {
	out := make(map[boss.SpawnKind]SpawnSpec, len(s.Spawns))
	for name, spawn := range s.Spawns {
		kind, err := boss.ParseSpawnKind(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: boss %s: spawns: %w", s.Name, err)
		}
		if spawn.Lifetime <= 0 {
			return nil, fmt.Errorf("prefabs: boss %s: spawns: %s: %w", s.Name, name, ErrBadLifetime)
		}
		out[kind] = spawn
	}
	return out, nil
}

type ArenaSpec struct {
	Name      string         `yaml:"name"`
	Boss      PointSpec      `yaml:"boss"`
	Target    PointSpec      `yaml:"target"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (p PointSpec) Vec3() boss.Vec3 {
	return boss.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

type ObstacleSpec struct {
	X         float64 `yaml:"x"`
	Z         float64 `yaml:"z"`
	HalfWidth float64 `yaml:"half_width"`
	HalfDepth float64 `yaml:"half_depth"`
}

func LoadArenaSpec(filename string) (*ArenaSpec, error) {
	if filename == "" {
		filename = "arena.yaml"
	}
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
