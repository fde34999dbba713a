package boss

import (
	"context"

	"github.com/looplab/fsm"
)

const (
	eventDetect    = "detect"
	eventEngage    = "engage"
	eventDisengage = "disengage"
	eventHurt      = "hurt"
	eventRecover   = "recover"
	eventDie       = "die"
)

// combatFSM is the discrete Idle/Chase/Attack/Hurt/Dead machine. Hurt and
// Dead are reachable from every live state; Dead has no exits.
type combatFSM struct {
	machine *fsm.FSM
}

func newCombatFSM(onEnter func(from, to CombatState)) *combatFSM {
	idle, chase, attack, hurt := string(StateIdle), string(StateChase), string(StateAttack), string(StateHurt)
	dead := string(StateDead)

	machine := fsm.NewFSM(idle,
		fsm.Events{
			{Name: eventDetect, Src: []string{idle}, Dst: chase},
			{Name: eventEngage, Src: []string{chase}, Dst: attack},
			{Name: eventDisengage, Src: []string{attack}, Dst: chase},
			{Name: eventHurt, Src: []string{idle, chase, attack}, Dst: hurt},
			{Name: eventRecover, Src: []string{hurt}, Dst: chase},
			{Name: eventDie, Src: []string{idle, chase, attack, hurt}, Dst: dead},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if onEnter != nil {
					onEnter(CombatState(e.Src), CombatState(e.Dst))
				}
			},
		},
	)
	return &combatFSM{machine: machine}
}

func (c *combatFSM) current() CombatState {
	return CombatState(c.machine.Current())
}

// fire reports whether the event moved the machine. Events that are not valid
// from the current state are ignored.
func (c *combatFSM) fire(event string) bool {
	if !c.machine.Can(event) {
		return false
	}
	return c.machine.Event(context.Background(), event) == nil
}
