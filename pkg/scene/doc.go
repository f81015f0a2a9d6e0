// Package scene defines the composite element tree for Vellum.
// A scene owns a root group of drawable elements; leaves (points, circles)
// and groups share the Element capability so that moving or drawing a
// group fans out to every descendant.
package scene
