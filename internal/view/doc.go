// Package view holds the four stateless view generators and the Artifact
// model they produce.
//
// Every generator returns exactly one Artifact. The Artifact's State tells
// the renderer which of the three normal situations applies (incomplete
// selection, empty result, rendered data); chart artifacts stay valid
// (no points, zero-valued slices) in the first two states.
package view
