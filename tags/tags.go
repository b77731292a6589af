package tags

import "github.com/yohamta/donburi"

var (
	// Spectator marks observer ghosts that may be moved freely during playback.
	Spectator = donburi.NewTag().SetName("Spectator")
	// ClientSide marks entities that exist only locally, not in the recording.
	ClientSide = donburi.NewTag().SetName("ClientSide")
	// Recorded marks entities replayed from the recording.
	Recorded = donburi.NewTag().SetName("Recorded")
	Grid     = donburi.NewTag().SetName("Grid")
)

// Resolv tags for the region broadphase
const (
	ResolvRegion = "region"
	ResolvProbe  = "probe"
)
