// Package ecs provides ECS adapters for dragdrop.
package ecs

import (
	"github.com/phanxgames/dragdrop"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DropEventType is the Donburi event type for completed drags.
// Subscribe to this in your ECS systems to receive drops.
var DropEventType = events.NewEventType[dragdrop.DropEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Drops are published to DropEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) dragdrop.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event dragdrop.DropEvent) {
	DropEventType.Publish(s.world, event)
}
