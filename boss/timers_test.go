package boss

import (
	"errors"
	"testing"
)

func TestTimerBankArmedOnSpawn(t *testing.T) {
	cases := []struct {
		name  string
		armed []TimerID
		want  [timerCount]float64
	}{
		{"default arms ultimate", []TimerID{TimerUltimate}, [timerCount]float64{0, 0, 12}},
		{"nothing armed", nil, [timerCount]float64{0, 0, 0}},
		{"all armed", []TimerID{TimerMelee, TimerRanged, TimerUltimate}, [timerCount]float64{2, 3, 12}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ArmedOnSpawn = tc.armed
			b := NewTimerBank(cfg)
			for id := TimerMelee; id < timerCount; id++ {
				if got := b.Remaining(id); got != tc.want[id] {
					t.Fatalf("%s: expected %v, got %v", id, tc.want[id], got)
				}
				if b.Ready(id) != (tc.want[id] == 0) {
					t.Fatalf("%s: unexpected ready state", id)
				}
			}
		})
	}
}

func TestTimerBankTickAndReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArmedOnSpawn = nil
	b := NewTimerBank(cfg)

	b.Reset(TimerMelee, 2)
	for i := 0; i < 20; i++ {
		b.Tick(0.05)
	}
	if !near(b.Remaining(TimerMelee), 1) {
		t.Fatalf("expected 1s remaining, got %v", b.Remaining(TimerMelee))
	}
	if b.Ready(TimerMelee) {
		t.Fatalf("melee should not be ready with time remaining")
	}

	b.Tick(5)
	if b.Remaining(TimerMelee) != 0 || !b.Ready(TimerMelee) {
		t.Fatalf("expected melee clamped at zero and ready, got %v", b.Remaining(TimerMelee))
	}
	if b.Ready(TimerID(42)) {
		t.Fatalf("unknown timer must never be ready")
	}
}

func TestParseTimerID(t *testing.T) {
	for in, want := range map[string]TimerID{"melee": TimerMelee, "Attack": TimerMelee, "ranged": TimerRanged, "projectile": TimerRanged, " ultimate ": TimerUltimate} {
		got, err := ParseTimerID(in)
		if err != nil || got != want {
			t.Fatalf("ParseTimerID(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTimerID("dash"); !errors.Is(err, ErrUnknownTimer) {
		t.Fatalf("expected ErrUnknownTimer, got %v", err)
	}
}
