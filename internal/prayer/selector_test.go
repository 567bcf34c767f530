package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

func sampleSet() *model.PrayerTimeSet {
	return &model.PrayerTimeSet{
		Prayers: [5]model.Prayer{
			{Name: "Fajr", Time: "05:12"},
			{Name: "Dhuhr", Time: "12:21"},
			{Name: "Asr", Time: "15:44"},
			{Name: "Maghrib", Time: "18:09"},
			{Name: "Isha", Time: "19:39"},
		},
	}
}

func at(hour int) time.Time {
	return time.Date(2024, time.March, 5, hour, 30, 0, 0, time.UTC)
}

func TestNextIndex_Buckets(t *testing.T) {
	want := map[int]int{
		0: 0, 4: 0,
		5: 1, 11: 1,
		12: 2, 14: 2,
		15: 3, 17: 3,
		18: 4, 19: 4,
		20: 0, 23: 0,
	}
	for hour, idx := range want {
		assert.Equal(t, idx, NextIndex(hour), "hour %d", hour)
	}
}

func TestSelect_NextPrayer(t *testing.T) {
	set := sampleSet()

	assert.Equal(t, "Fajr", Select(set, at(4)).Next.Name)
	assert.Equal(t, "Asr", Select(set, at(13)).Next.Name)
	assert.Equal(t, "Fajr", Select(set, at(23)).Next.Name)
}

func TestSelect_IgnoresFetchedTimes(t *testing.T) {
	// Maghrib at 21:00 does not move the 18:00 boundary
	set := sampleSet()
	set.Prayers[3].Time = "21:00"
	set.Prayers[4].Time = "22:30"

	sel := Select(set, at(19))
	require.NotNil(t, sel.Next)
	assert.Equal(t, "Isha", sel.Next.Name)
	assert.Equal(t, "22:30", sel.Next.Time)
}

func TestSelect_StripHasExactlyOneNext(t *testing.T) {
	set := sampleSet()
	for hour := 0; hour < 24; hour++ {
		sel := Select(set, at(hour))
		require.Len(t, sel.Strip, 5)

		count := 0
		for i, item := range sel.Strip {
			if item.IsNext {
				count++
				assert.Equal(t, NextIndex(hour), i)
				assert.Equal(t, sel.Next.Name, item.Name)
			}
		}
		assert.Equal(t, 1, count, "hour %d", hour)
	}

	sel := Select(set, at(9))
	assert.Equal(t, "05:12", sel.Strip[0].Display)
	assert.Equal(t, "AM", sel.Strip[0].Period)
	assert.Equal(t, "06:09", sel.Strip[3].Display)
	assert.Equal(t, "PM", sel.Strip[3].Period)
}

func TestSelect_NoTimings(t *testing.T) {
	sel := Select(nil, at(10))
	assert.Nil(t, sel.Next)
	assert.Empty(t, sel.Strip)
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "morning", Greeting(6))
	assert.Equal(t, "afternoon", Greeting(12))
	assert.Equal(t, "afternoon", Greeting(16))
	assert.Equal(t, "evening", Greeting(17))
}
