// Package node runs the planner as a long-lived service fed by map, pose and
// goal updates.
//
// Every feed is latest-wins: SetMap and SetPose replace the stored value, and
// SetGoal replaces a goal that has not been picked up yet. Run plans from the
// latest pose to each goal on the latest map and hands the resulting path,
// in world coordinates, to a Sink. Invalid goals are logged and skipped; a
// Sink error stops Run.
package node
