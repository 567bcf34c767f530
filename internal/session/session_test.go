package session

import (
	"context"
	"testing"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fatiha = model.AudioTrack{Title: "الفاتحة", SourceURL: "https://server8.mp3quran.net/afs/001.mp3"}
var baqarah = model.AudioTrack{Title: "البقرة", SourceURL: "https://server8.mp3quran.net/afs/002.mp3"}

func TestPlayTrack(t *testing.T) {
	s := Reduce(New(), PlayTrack{Track: fatiha})
	require.NotNil(t, s.Playback.CurrentTrack)
	assert.True(t, s.Playback.IsPlaying)
	assert.Equal(t, fatiha.SourceURL, s.Playback.CurrentTrack.SourceURL)

	s = Reduce(s, Progress{CurrentTime: 30, Duration: 60})
	assert.InDelta(t, 50, s.Playback.Progress, 1e-9)

	// same track toggles and keeps position
	s = Reduce(s, PlayTrack{Track: fatiha})
	assert.False(t, s.Playback.IsPlaying)
	assert.InDelta(t, 50, s.Playback.Progress, 1e-9)

	// new track restarts
	s = Reduce(s, PlayTrack{Track: baqarah})
	assert.True(t, s.Playback.IsPlaying)
	assert.Zero(t, s.Playback.Progress)
	assert.Equal(t, baqarah.SourceURL, s.Playback.CurrentTrack.SourceURL)
}

func TestTogglePlayWithoutTrack(t *testing.T) {
	s := Reduce(New(), TogglePlay{})
	assert.False(t, s.Playback.IsPlaying)
	assert.Nil(t, s.Playback.CurrentTrack)
}

func TestClosePlayer(t *testing.T) {
	s := Reduce(New(), PlayTrack{Track: fatiha})
	s = Reduce(s, ClosePlayer{})
	assert.Equal(t, model.PlaybackState{}, s.Playback)
	require.NotNil(t, s.Location)
}

func TestProgressEnded(t *testing.T) {
	s := Reduce(New(), PlayTrack{Track: fatiha})
	s = Reduce(s, Progress{CurrentTime: 60, Duration: 60})
	assert.False(t, s.Playback.IsPlaying)
	assert.Equal(t, 100.0, s.Playback.Progress)

	s = Reduce(s, Progress{CurrentTime: 5, Duration: 0})
	assert.Zero(t, s.Playback.Progress)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(New(), PlayTrack{Track: fatiha})
	loc := model.UserLocation{Point: model.GeoPoint{Latitude: 51.5, Longitude: -0.12}, CityName: "London"}

	after := Reduce(before, SetLocation{Location: loc})
	_ = Reduce(after, ClosePlayer{})

	assert.Equal(t, DefaultLocation, *before.Location)
	assert.Equal(t, loc, *after.Location)
	assert.NotNil(t, after.Playback.CurrentTrack)
}

func TestManagerPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	loc := model.UserLocation{Point: model.GeoPoint{Latitude: 30.04, Longitude: 31.24}, CityName: "Cairo"}

	m := NewManager(cache.New(store))
	assert.Equal(t, DefaultLocation, *m.Get(ctx, 7).Location)
	m.Dispatch(ctx, 7, SetLocation{Location: loc})

	restarted := NewManager(cache.New(store))
	got := restarted.Get(ctx, 7)
	require.NotNil(t, got.Location)
	assert.Equal(t, loc, *got.Location)

	other := restarted.Get(ctx, 8)
	assert.Equal(t, DefaultLocation, *other.Location)
}
