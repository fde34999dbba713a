package component

import "github.com/milk9111/bossarena/boss"

// Boss binds a combat controller to an entity. Phase and State mirror the
// controller after every tick so other systems can read them without
// touching the controller.
type Boss struct {
	Controller *boss.Controller
	Phase      boss.Phase
	State      boss.CombatState
}

var BossComponent = NewComponent[Boss]()
