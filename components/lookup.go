package components

import "github.com/yohamta/donburi"

// TryGet returns the component of kind c on entity e. A dead entity or a missing
// component is reported with ok=false rather than a panic.
func TryGet[T any](w donburi.World, e donburi.Entity, c *donburi.ComponentType[T]) (*T, bool) {
	if e == donburi.Null || !w.Valid(e) {
		return nil, false
	}
	entry := w.Entry(e)
	if !entry.HasComponent(c) {
		return nil, false
	}
	return c.Get(entry), true
}

// Has reports whether entity e is alive and carries component c.
func Has(w donburi.World, e donburi.Entity, c donburi.IComponentType) bool {
	if e == donburi.Null || !w.Valid(e) {
		return false
	}
	return w.Entry(e).HasComponent(c)
}
