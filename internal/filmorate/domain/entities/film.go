package entities

import (
	"slices"
	"time"
)

// Ограничения полей фильма.
const (
	MaxDescriptionLength = 200
	DefaultPopularCount  = 10
)

// MinReleaseDate - дата первого киносеанса.
var MinReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film - фильм каталога.
type Film struct {
	ID          int64
	Name        string
	Description string
	ReleaseDate time.Time
	// Duration - продолжительность в минутах.
	Duration int
	Mpa      Mpa
	// Genres отсортированы по ID, без повторов.
	Genres []Genre
	// UserLikes - отсортированные идентификаторы пользователей, поставивших лайк.
	UserLikes []int64
}

// Likes возвращает количество лайков. Отдельный счетчик не хранится.
func (f *Film) Likes() int {
	return len(f.UserLikes)
}

// LikedBy проверяет, ставил ли пользователь лайк.
func (f *Film) LikedBy(userID int64) bool {
	_, found := slices.BinarySearch(f.UserLikes, userID)
	return found
}

// GenreIDs возвращает идентификаторы жанров.
func (f *Film) GenreIDs() []int64 {
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// NormalizeGenres сортирует жанры по ID и удаляет повторы.
func (f *Film) NormalizeGenres() {
	slices.SortFunc(f.Genres, func(a, b Genre) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	f.Genres = slices.CompactFunc(f.Genres, func(a, b Genre) bool { return a.ID == b.ID })
}

// Clone возвращает независимую копию.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	clone := *f
	clone.Genres = slices.Clone(f.Genres)
	clone.UserLikes = slices.Clone(f.UserLikes)
	return &clone
}
