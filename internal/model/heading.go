package model

import "time"

type HeadingSource int

const (
	// SourceCompass is a dedicated high-confidence compass heading.
	SourceCompass HeadingSource = iota
	// SourceOrientation is derived from the generic orientation angle.
	SourceOrientation
)

func (s HeadingSource) String() string {
	switch s {
	case SourceCompass:
		return "device-compass"
	case SourceOrientation:
		return "orientation"
	default:
		return "unknown"
	}
}

type HeadingSample struct {
	Degrees   float64       `json:"degrees"`
	Source    HeadingSource `json:"source"`
	Timestamp time.Time     `json:"timestamp"`
}

// RawOrientation is a single platform orientation event. Either field may be
// missing depending on what the device exposes.
type RawOrientation struct {
	CompassHeading *float64 `json:"compass_heading,omitempty"`
	Alpha          *float64 `json:"alpha,omitempty"`
}

// Sample converts the event into a HeadingSample. The compass field wins over
// alpha; an alpha of exactly zero carries no information and is ignored.
func (r RawOrientation) Sample(at time.Time) (HeadingSample, bool) {
	if r.CompassHeading != nil {
		return HeadingSample{Degrees: *r.CompassHeading, Source: SourceCompass, Timestamp: at}, true
	}
	if r.Alpha != nil && *r.Alpha != 0 {
		return HeadingSample{Degrees: 360 - *r.Alpha, Source: SourceOrientation, Timestamp: at}, true
	}
	return HeadingSample{}, false
}
