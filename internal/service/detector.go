// Package service содержит бизнес-логику приложения.
package service

import (
	"time"

	"playlisttracker/internal/gateway/spotify"
)

// Verdict представляет результат проверки плейлиста на новые треки
type Verdict struct {
	// Watermark — новое значение отметки времени. Не убывает:
	// при отсутствии новых треков совпадает с переданным значением.
	Watermark *time.Time

	// HasNew — появились ли треки свежее отметки
	HasNew bool
}

// Detect сравнивает список треков с сохраненной отметкой времени последнего
// добавления. Чистая функция без I/O.
//
// Пустой список треков возвращает отметку без изменений. Трек с временем
// добавления, равным отметке, новым не считается.
func Detect(tracks []spotify.Track, watermark *time.Time) Verdict {
	if len(tracks) == 0 {
		return Verdict{Watermark: watermark}
	}

	maxAddedAt := tracks[0].AddedAt
	for _, track := range tracks[1:] {
		if track.AddedAt.After(maxAddedAt) {
			maxAddedAt = track.AddedAt
		}
	}

	if watermark != nil && !maxAddedAt.After(*watermark) {
		return Verdict{Watermark: watermark}
	}

	return Verdict{Watermark: &maxAddedAt, HasNew: true}
}

// MaxAddedAt возвращает время самого свежего добавления в списке треков.
// Используется для инициализации отметки при первой регистрации плейлиста,
// чтобы уже существующие треки не объявлялись новыми.
func MaxAddedAt(tracks []spotify.Track) *time.Time {
	if len(tracks) == 0 {
		return nil
	}

	maxAddedAt := tracks[0].AddedAt
	for _, track := range tracks[1:] {
		if track.AddedAt.After(maxAddedAt) {
			maxAddedAt = track.AddedAt
		}
	}

	return &maxAddedAt
}
