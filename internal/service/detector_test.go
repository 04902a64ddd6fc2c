package service

import (
	"testing"
	"time"

	"playlisttracker/internal/gateway/spotify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05Z", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func tsPtr(value string) *time.Time {
	t := ts(value)
	return &t
}

func TestDetect_NewTrackAfterWatermark(t *testing.T) {
	tracks := []spotify.Track{
		{ID: "a", AddedAt: ts("2024-01-01T00:00:00Z")},
		{ID: "b", AddedAt: ts("2024-01-02T00:00:00Z")},
	}

	verdict := Detect(tracks, tsPtr("2024-01-01T00:00:00Z"))

	assert.True(t, verdict.HasNew)
	require.NotNil(t, verdict.Watermark)
	assert.Equal(t, ts("2024-01-02T00:00:00Z"), *verdict.Watermark)
}

func TestDetect_WatermarkUpToDate(t *testing.T) {
	tracks := []spotify.Track{
		{ID: "a", AddedAt: ts("2024-01-01T00:00:00Z")},
		{ID: "b", AddedAt: ts("2024-01-02T00:00:00Z")},
	}

	verdict := Detect(tracks, tsPtr("2024-01-02T00:00:00Z"))

	assert.False(t, verdict.HasNew)
	require.NotNil(t, verdict.Watermark)
	assert.Equal(t, ts("2024-01-02T00:00:00Z"), *verdict.Watermark)
}

func TestDetect_EqualTimestampIsNotNew(t *testing.T) {
	tracks := []spotify.Track{
		{ID: "a", AddedAt: ts("2024-03-15T12:00:00Z")},
		{ID: "b", AddedAt: ts("2024-03-15T12:00:00Z")},
	}

	verdict := Detect(tracks, tsPtr("2024-03-15T12:00:00Z"))

	assert.False(t, verdict.HasNew)
}

func TestDetect_EmptyTrackList(t *testing.T) {
	watermark := tsPtr("2024-01-01T00:00:00Z")

	verdict := Detect(nil, watermark)
	assert.False(t, verdict.HasNew)
	assert.Equal(t, watermark, verdict.Watermark)

	verdict = Detect(nil, nil)
	assert.False(t, verdict.HasNew)
	assert.Nil(t, verdict.Watermark)
}

func TestDetect_NilWatermark(t *testing.T) {
	tracks := []spotify.Track{
		{ID: "a", AddedAt: ts("2024-01-01T00:00:00Z")},
	}

	verdict := Detect(tracks, nil)

	assert.True(t, verdict.HasNew)
	require.NotNil(t, verdict.Watermark)
	assert.Equal(t, ts("2024-01-01T00:00:00Z"), *verdict.Watermark)
}

func TestDetect_WatermarkNeverRegresses(t *testing.T) {
	// Трек исчез из плейлиста: отметка остается прежней
	tracks := []spotify.Track{
		{ID: "a", AddedAt: ts("2023-06-01T00:00:00Z")},
	}

	verdict := Detect(tracks, tsPtr("2024-01-01T00:00:00Z"))

	assert.False(t, verdict.HasNew)
	require.NotNil(t, verdict.Watermark)
	assert.Equal(t, ts("2024-01-01T00:00:00Z"), *verdict.Watermark)
}

func TestDetect_Idempotent(t *testing.T) {
	tracks := []spotify.Track{
		{ID: "a", AddedAt: ts("2024-01-01T00:00:00Z")},
		{ID: "b", AddedAt: ts("2024-01-02T00:00:00Z")},
	}
	watermark := tsPtr("2024-01-01T00:00:00Z")

	first := Detect(tracks, watermark)
	second := Detect(tracks, watermark)

	assert.Equal(t, first, second)

	// Повторная проверка с обновленной отметкой ничего не находит
	repeat := Detect(tracks, first.Watermark)
	assert.False(t, repeat.HasNew)
	assert.Equal(t, first.Watermark, repeat.Watermark)
}

func TestDetect_UnorderedTracks(t *testing.T) {
	// Максимум ищется по всем трекам, а не по последнему элементу
	tracks := []spotify.Track{
		{ID: "b", AddedAt: ts("2024-01-03T00:00:00Z")},
		{ID: "c", AddedAt: ts("2024-01-01T00:00:00Z")},
		{ID: "a", AddedAt: ts("2024-01-02T00:00:00Z")},
	}

	verdict := Detect(tracks, tsPtr("2024-01-01T00:00:00Z"))

	assert.True(t, verdict.HasNew)
	require.NotNil(t, verdict.Watermark)
	assert.Equal(t, ts("2024-01-03T00:00:00Z"), *verdict.Watermark)
}

func TestMaxAddedAt(t *testing.T) {
	assert.Nil(t, MaxAddedAt(nil))

	tracks := []spotify.Track{
		{ID: "a", AddedAt: ts("2024-01-02T00:00:00Z")},
		{ID: "b", AddedAt: ts("2024-01-05T00:00:00Z")},
		{ID: "c", AddedAt: ts("2024-01-03T00:00:00Z")},
	}

	got := MaxAddedAt(tracks)
	require.NotNil(t, got)
	assert.Equal(t, ts("2024-01-05T00:00:00Z"), *got)
}
