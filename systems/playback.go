package systems

// PlaybackSession reports whether a replay is currently being played back.
type PlaybackSession interface {
	Active() bool
}

// Playback is a minimal session handle toggled by the scene that owns the replay.
type Playback struct {
	active bool
}

func (p *Playback) Start() { p.active = true }
func (p *Playback) Stop()  { p.active = false }

func (p *Playback) Active() bool {
	return p != nil && p.active
}
