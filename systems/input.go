package systems

import (
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// KeyInput polls the keyboard once per frame and turns held-state changes of
// bound actions into edges on a CommandBinds registry.
type KeyInput struct {
	binds    *CommandBinds
	bindings func() map[cfg.ActionID]cfg.InputBinding
	pressed  func(ebiten.Key) bool

	current  [cfg.ActionCount]bool
	previous [cfg.ActionCount]bool
}

// NewKeyInput returns a poller reading config.Input through ebiten.
func NewKeyInput(binds *CommandBinds) *KeyInput {
	return &KeyInput{
		binds:    binds,
		bindings: func() map[cfg.ActionID]cfg.InputBinding { return cfg.Input.Bindings },
		pressed:  ebiten.IsKeyPressed,
	}
}

// Update is the ECS system entry point.
func (k *KeyInput) Update(_ *ecs.ECS) {
	k.Poll()
}

// Poll reads the keyboard and dispatches one edge per action whose held state changed.
func (k *KeyInput) Poll() {
	// Swap buffers: current becomes previous, then zero out current
	k.previous = k.current
	k.current = [cfg.ActionCount]bool{}

	for actionID, binding := range k.bindings() {
		if actionID <= cfg.ActionNone || actionID >= cfg.ActionCount {
			continue
		}
		for _, key := range binding.Keys {
			if k.pressed(key) {
				k.current[actionID] = true
				break
			}
		}
	}

	for id := cfg.ActionNone + 1; id < cfg.ActionCount; id++ {
		switch {
		case k.current[id] && !k.previous[id]:
			k.binds.Dispatch(id, BoundKeyDown)
		case !k.current[id] && k.previous[id]:
			k.binds.Dispatch(id, BoundKeyUp)
		}
	}
}

// Held reports whether action was held on the last poll.
func (k *KeyInput) Held(action cfg.ActionID) bool {
	if action <= cfg.ActionNone || action >= cfg.ActionCount {
		return false
	}
	return k.current[action]
}
