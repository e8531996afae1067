package domain

import (
	"math"
	"strings"
	"unicode"
)

// BoundingBox is a geographic extent in degrees.
type BoundingBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// IsValid reports whether the box can be used to fit a viewport.
// A nil box is never valid.
func (b *BoundingBox) IsValid() bool {
	if b == nil {
		return false
	}
	for _, v := range []float64{b.South, b.West, b.North, b.East} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if b.South < -90 || b.North > 90 {
		return false
	}
	return b.South <= b.North && b.West <= b.East
}

// Center returns the midpoint of the box as (lat, lng).
func (b *BoundingBox) Center() (float64, float64) {
	return (b.South + b.North) / 2, (b.West + b.East) / 2
}

// Location is a single resolved place returned by a provider.
// X is the longitude and Y the latitude.
type Location struct {
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Label   string         `json:"label"`
	Bounds  *BoundingBox   `json:"bounds,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// NewLocation creates a location. The bounds and details are copied so the
// result does not alias provider-owned memory.
func NewLocation(x, y float64, label string, bounds *BoundingBox, details map[string]any) Location {
	loc := Location{X: x, Y: y, Label: label}
	if bounds != nil {
		b := *bounds
		loc.Bounds = &b
	}
	if len(details) > 0 {
		loc.Details = make(map[string]any, len(details))
		for k, v := range details {
			loc.Details[k] = v
		}
	}
	return loc
}

// Lat returns the latitude.
func (l Location) Lat() float64 { return l.Y }

// Lng returns the longitude.
func (l Location) Lng() float64 { return l.X }

// EscapeLabel makes a provider label safe to print on a terminal. Line
// breaks and tabs become spaces and every other control character is
// dropped, so a label cannot carry escape sequences.
func EscapeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, label)
}
