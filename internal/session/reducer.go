// Package session keeps the per-user state the client views share: the
// active location and the audio player. State only changes through Reduce.
package session

import (
	"math"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// DefaultLocation is used until the user picks a city or reports a fix.
var DefaultLocation = model.UserLocation{
	Point:    model.GeoPoint{Latitude: 21.4225, Longitude: 39.8262},
	CityName: "مكة المكرمة",
	IsAuto:   true,
}

// Action is a state transition. The set is closed.
type Action interface {
	apply(model.Session) model.Session
}

type SetLocation struct {
	Location model.UserLocation
}

// PlayTrack loads a track and starts it. Playing the loaded track again
// toggles it instead.
type PlayTrack struct {
	Track model.AudioTrack
}

type TogglePlay struct{}

type ClosePlayer struct{}

// Progress reports the player position. Reaching the end stops playback.
type Progress struct {
	CurrentTime float64
	Duration    float64
}

func (a SetLocation) apply(s model.Session) model.Session {
	loc := a.Location
	s.Location = &loc
	return s
}

func (a PlayTrack) apply(s model.Session) model.Session {
	if cur := s.Playback.CurrentTrack; cur != nil && cur.SourceURL == a.Track.SourceURL {
		return TogglePlay{}.apply(s)
	}
	track := a.Track
	s.Playback = model.PlaybackState{
		IsPlaying:    true,
		CurrentTrack: &track,
	}
	return s
}

func (TogglePlay) apply(s model.Session) model.Session {
	if s.Playback.CurrentTrack == nil {
		return s
	}
	s.Playback.IsPlaying = !s.Playback.IsPlaying
	return s
}

func (ClosePlayer) apply(s model.Session) model.Session {
	s.Playback = model.PlaybackState{}
	return s
}

func (a Progress) apply(s model.Session) model.Session {
	if s.Playback.CurrentTrack == nil {
		return s
	}
	s.Playback.CurrentTime = a.CurrentTime
	s.Playback.Duration = a.Duration

	if a.Duration <= 0 || math.IsNaN(a.Duration) || math.IsInf(a.Duration, 0) {
		s.Playback.Progress = 0
		return s
	}
	if a.CurrentTime >= a.Duration {
		s.Playback.IsPlaying = false
		s.Playback.Progress = 100
		return s
	}
	s.Playback.Progress = a.CurrentTime / a.Duration * 100
	return s
}

// New returns a session at the default location with the player closed.
func New() model.Session {
	loc := DefaultLocation
	return model.Session{Location: &loc}
}

// Reduce returns the state after a. s is not modified.
func Reduce(s model.Session, a Action) model.Session {
	if s.Location != nil {
		loc := *s.Location
		s.Location = &loc
	}
	if s.Playback.CurrentTrack != nil {
		t := *s.Playback.CurrentTrack
		s.Playback.CurrentTrack = &t
	}
	return a.apply(s)
}
