// Package ecs provides ECS adapters for scrollsync.
package ecs

import (
	"github.com/phanxgames/scrollsync"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TriggerEventType is the Donburi event type for scroll trigger edges.
// Subscribe to this in your ECS systems to react when sections enter or
// leave the viewport.
var TriggerEventType = events.NewEventType[scrollsync.TriggerEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Trigger
// events are published to TriggerEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) scrollsync.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitTrigger(event scrollsync.TriggerEvent) {
	TriggerEventType.Publish(s.world, event)
}
