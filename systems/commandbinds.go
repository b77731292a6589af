package systems

import (
	cfg "github.com/automoto/doomerang-spectator/config"
)

// BoundKeyState is the edge reported for a bound action.
type BoundKeyState int

const (
	BoundKeyUp BoundKeyState = iota
	BoundKeyDown
)

func (s BoundKeyState) String() string {
	if s == BoundKeyDown {
		return "down"
	}
	return "up"
}

// InputCmdHandler receives key edges for one action. It returns true when the
// event was consumed and must not reach later handlers.
type InputCmdHandler interface {
	HandleCmd(state BoundKeyState) bool
}

// Bind pairs an action with its handler.
type Bind struct {
	Action  cfg.ActionID
	Handler InputCmdHandler
}

// CommandBinds routes action edges to handlers registered by owners. Owners
// register as a group so re-registering or unregistering is idempotent.
type CommandBinds struct {
	owners []string
	binds  map[string][]Bind
}

// NewCommandBinds returns an empty registry.
func NewCommandBinds() *CommandBinds {
	return &CommandBinds{
		binds: make(map[string][]Bind),
	}
}

// Register installs binds for owner, replacing anything the owner had before.
func (c *CommandBinds) Register(owner string, binds ...Bind) {
	if _, ok := c.binds[owner]; !ok {
		c.owners = append(c.owners, owner)
	}
	c.binds[owner] = append([]Bind(nil), binds...)
}

// Unregister removes every bind of owner. Unknown owners are ignored.
func (c *CommandBinds) Unregister(owner string) {
	if _, ok := c.binds[owner]; !ok {
		return
	}
	delete(c.binds, owner)
	for i, o := range c.owners {
		if o == owner {
			c.owners = append(c.owners[:i], c.owners[i+1:]...)
			break
		}
	}
}

// Registered reports whether owner currently has binds installed.
func (c *CommandBinds) Registered(owner string) bool {
	_, ok := c.binds[owner]
	return ok
}

// Dispatch delivers an edge to handlers bound to action in registration order
// and stops at the first one that consumes it.
func (c *CommandBinds) Dispatch(action cfg.ActionID, state BoundKeyState) bool {
	for _, owner := range c.owners {
		for _, b := range c.binds[owner] {
			if b.Action != action {
				continue
			}
			if b.Handler.HandleCmd(state) {
				return true
			}
		}
	}
	return false
}
