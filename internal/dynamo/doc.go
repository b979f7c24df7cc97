// Package dynamo provides the fixed-timestep simulation loop.
//
// A run is a fixed number of discrete steps. Every step the [Driver] calls,
// in order:
//
//   - the collide callback, against the state left by the previous step
//   - the advance callback, with the constant step size
//   - the cleanup hooks registered with [Driver.OnCleanup]
//   - the render callback, then every registered [Observer]
//
// The driver never interprets physics state. Worlds, bodies and contact
// groups belong to the caller and are reached through the callbacks' closures.
//
// # Example
//
//	d := dynamo.New(world.Step, scene.Collide, text.Render)
//	d.OnCleanup(contacts.Empty)
//	err := d.Run(ctx, dynamo.Config{Steps: 1000, Dt: 0.01})
//
// # Thread Safety
//
// A Driver runs synchronously on the calling goroutine. Independent drivers
// may run concurrently; use [Ensemble] to run several instances in parallel.
package dynamo
