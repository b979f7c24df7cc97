// Package physics is the rigid-body collaborator the simulation loop drives.
//
// It wraps the Chipmunk2D port github.com/jakecoffman/cp behind an
// ODE-shaped API: a World with gravity and damping, sphere bodies with mass,
// plane and sphere geometries, hinge joints, a broad-phase query that hands
// each candidate pair to a near callback, narrow-phase contact generation and
// contact groups that are emptied after every step.
//
// The world is plane-constrained. Bodies move in the x-z plane with z up; the
// y coordinate of a body is kept from its last SetPosition. Gravity, plane
// normals and hinge axes that would leave that plane are rejected with
// ErrUnsupportedAxis.
//
// Contacts follow ODE semantics: a touching pair is resolved by Step only if a
// contact joint for it was attached to a ContactGroup since the group was last
// emptied. Pairs found by the engine without an attached contact pass through
// each other for that step.
package physics
