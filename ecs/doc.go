// Package ecs provides ECS adapters for dragdrop's drop notifications.
//
// The primary adapter is [NewDonburiStore], which bridges completed drags
// into a [Donburi] world as typed events. Subscribe to [DropEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	dragType.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
