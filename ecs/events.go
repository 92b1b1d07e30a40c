package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationStopped is published when an animation settles to stopped,
// either after its last pass or after a force stop.
type AnimationStopped struct {
	Entity    donburi.Entity
	Animation string
	Forced    bool
}

// AnimationStoppedEvent is the donburi event type for AnimationStopped.
// Events are queued; they reach subscribers when the scene processes events
// at the end of the frame.
var AnimationStoppedEvent = events.NewEventType[AnimationStopped]()
