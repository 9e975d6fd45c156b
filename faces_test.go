package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twentyfour/clock"
)

func attrs(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func TestNewFaceFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height, cfg.Frequency, cfg.TwilightDegree = 300, 200, 0.5, -12

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	face, err := newFace(cfg, Place{Location: tokyo, Longitude: 139.7, Latitude: 35.7, Known: true}, equinoxNoon)
	require.NoError(t, err)

	assert.Equal(t, 300.0, face.Width())
	assert.Equal(t, 200.0, face.Height())
	assert.Equal(t, -12.0, face.TwilightDegree())
	assert.True(t, face.SecondsHidden())
	assert.Equal(t, 2*time.Second, face.Interval())
	assert.Equal(t, "UTC+09:00", face.UTCOffsetString())
	lon, ok := face.Longitude()
	assert.True(t, ok)
	assert.Equal(t, 139.7, lon)

	cfg.Width = 0
	_, err = newFace(cfg, nullIsland, equinoxNoon)
	assert.ErrorIs(t, err, clock.ErrInvalidAttribute)
}

func TestApplyAttributes(t *testing.T) {
	face, err := newFace(testConfig(), nullIsland, equinoxNoon)
	require.NoError(t, err)

	err = applyAttributes(face, nullIsland, attrs(map[string]string{
		"tz":        "America/New_York",
		"datetime":  "2023-07-04T09:30:00",
		"longitude": "-74.0",
		"latitude":  "40.7",
		"frequency": "0",
	}))
	require.NoError(t, err)
	assert.Equal(t, "2023-07-04", face.DateString())
	assert.Equal(t, "UTC-04:00", face.UTCOffsetString())
	assert.Equal(t, 9, face.Datetime().Hour())
	assert.Zero(t, face.Interval())
	lat, _ := face.Latitude()
	assert.Equal(t, 40.7, lat)
}

func TestApplyAttributesAutoLocation(t *testing.T) {
	face, err := newFace(testConfig(), Place{Location: time.UTC}, equinoxNoon)
	require.NoError(t, err)

	berlin := Place{Name: "Berlin", Longitude: 13.4, Latitude: 52.5, Location: time.UTC, Known: true}
	require.NoError(t, applyAttributes(face, berlin, attrs(map[string]string{"longitude": "auto"})))
	assert.False(t, face.AutoLocation())
	lon, ok := face.Longitude()
	assert.True(t, ok)
	assert.Equal(t, 13.4, lon)

	// nothing to resolve with, the face keeps waiting
	face, err = newFace(testConfig(), Place{Location: time.UTC}, equinoxNoon)
	require.NoError(t, err)
	require.NoError(t, applyAttributes(face, Place{Location: time.UTC}, attrs(map[string]string{"latitude": "auto"})))
	assert.True(t, face.AutoLocation())
	assert.Len(t, face.Segments(), 1)
}

func TestApplyAttributesErrors(t *testing.T) {
	face, err := newFace(testConfig(), nullIsland, equinoxNoon)
	require.NoError(t, err)

	assert.ErrorIs(t, applyAttributes(face, nullIsland, attrs(map[string]string{"tz": "Nowhere/Special"})), clock.ErrInvalidAttribute)
	assert.ErrorIs(t, applyAttributes(face, nullIsland, attrs(map[string]string{"height": "tall"})), clock.ErrInvalidAttribute)
}
