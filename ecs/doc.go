// Package ecs provides ECS adapters for scrollsync's trigger events.
//
// The primary adapter is [NewDonburiSink], which bridges scroll trigger
// edges (enter, leave, enter back, leave back) into a [Donburi] world as
// typed events. Subscribe to [TriggerEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	page.Engine().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
