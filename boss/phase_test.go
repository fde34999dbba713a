package boss

import "testing"

func TestPhasePolicyEvaluate(t *testing.T) {
	normal := PhasePolicy{Phase2Threshold: 50, Phase3Threshold: 20}
	inverted := PhasePolicy{Phase2Threshold: 20, Phase3Threshold: 50}

	cases := []struct {
		name    string
		policy  PhasePolicy
		health  int
		current Phase
		want    Phase
	}{
		{"full health", normal, 100, Phase1, Phase1},
		{"at phase2 threshold", normal, 50, Phase1, Phase2},
		{"at phase3 threshold", normal, 20, Phase1, Phase3},
		{"skips phase2", normal, 5, Phase1, Phase3},
		{"negative health", normal, -10, Phase2, Phase3},
		{"never regresses from phase3", normal, 90, Phase3, Phase3},
		{"never regresses from phase2", normal, 90, Phase2, Phase2},
		{"inverted thresholds prefer phase3", inverted, 40, Phase1, Phase3},
		{"inverted thresholds above both", inverted, 60, Phase1, Phase1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.policy.Evaluate(tc.health, tc.current); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
