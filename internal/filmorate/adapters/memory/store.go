// Package memory реализует хранилище каталога в памяти процесса.
// Все проверки и изменения выполняются под одной блокировкой, поэтому
// проверка существования, уникальности и запись обоих направлений дружбы атомарны.
package memory

import (
	"maps"
	"slices"
	"sync"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

type idSet map[int64]struct{}

func (s idSet) sorted() []int64 {
	ids := slices.Collect(maps.Keys(s))
	slices.Sort(ids)
	return ids
}

// Store - общее состояние всех репозиториев в памяти.
type Store struct {
	mu sync.RWMutex

	users   map[int64]*entities.User
	films   map[int64]*entities.Film
	friends map[int64]idSet
	likes   map[int64]idSet

	genres  map[int64]entities.Genre
	ratings map[int64]entities.Mpa

	nextUserID int64
	nextFilmID int64
}

// NewStore создает пустое хранилище с заполненными справочниками.
func NewStore() *Store {
	s := &Store{
		users:   make(map[int64]*entities.User),
		films:   make(map[int64]*entities.Film),
		friends: make(map[int64]idSet),
		likes:   make(map[int64]idSet),
		genres:  make(map[int64]entities.Genre),
		ratings: make(map[int64]entities.Mpa),
	}
	for _, g := range entities.Genres() {
		s.genres[g.ID] = g
	}
	for _, r := range entities.Ratings() {
		s.ratings[r.ID] = r
	}
	return s
}

// userView собирает пользователя с актуальным списком друзей. Вызывать под блокировкой.
func (s *Store) userView(id int64) *entities.User {
	stored, ok := s.users[id]
	if !ok {
		return nil
	}
	user := stored.Clone()
	user.Friends = s.friends[id].sorted()
	return user
}

// filmView собирает фильм с актуальными лайками. Вызывать под блокировкой.
func (s *Store) filmView(id int64) *entities.Film {
	stored, ok := s.films[id]
	if !ok {
		return nil
	}
	film := stored.Clone()
	film.UserLikes = s.likes[id].sorted()
	return film
}

// resolveReferences подставляет названия рейтинга и жанров. Вызывать под блокировкой.
func (s *Store) resolveReferences(op string, film *entities.Film) error {
	mpa, ok := s.ratings[film.Mpa.ID]
	if !ok {
		return entities.NewNotFoundError(op, "mpa %d not found", film.Mpa.ID)
	}
	film.Mpa = mpa

	genres := make([]entities.Genre, 0, len(film.Genres))
	for _, g := range film.Genres {
		genre, ok := s.genres[g.ID]
		if !ok {
			return entities.NewNotFoundError(op, "genre %d not found", g.ID)
		}
		genres = append(genres, genre)
	}
	film.Genres = genres
	film.NormalizeGenres()
	return nil
}

func (s *Store) requireUsers(op string, ids ...int64) error {
	for _, id := range ids {
		if _, ok := s.users[id]; !ok {
			return entities.NewNotFoundError(op, "user %d not found", id)
		}
	}
	return nil
}

func (s *Store) requireFilm(op string, id int64) error {
	if _, ok := s.films[id]; !ok {
		return entities.NewNotFoundError(op, "film %d not found", id)
	}
	return nil
}

// RepositoryFactory предоставляет репозитории поверх одного Store.
type RepositoryFactory struct {
	userRepo   repositories.UserRepository
	filmRepo   repositories.FilmRepository
	friendRepo repositories.FriendRepository
	likeRepo   repositories.LikeRepository
	genreRepo  repositories.GenreRepository
	mpaRepo    repositories.MpaRepository
}

// NewRepositoryFactory создает фабрику с новым пустым хранилищем.
func NewRepositoryFactory() *RepositoryFactory {
	store := NewStore()
	return &RepositoryFactory{
		userRepo:   &UserRepository{store: store},
		filmRepo:   &FilmRepository{store: store},
		friendRepo: &FriendRepository{store: store},
		likeRepo:   &LikeRepository{store: store},
		genreRepo:  &GenreRepository{store: store},
		mpaRepo:    &MpaRepository{store: store},
	}
}

func (f *RepositoryFactory) UserRepository() repositories.UserRepository     { return f.userRepo }
func (f *RepositoryFactory) FilmRepository() repositories.FilmRepository     { return f.filmRepo }
func (f *RepositoryFactory) FriendRepository() repositories.FriendRepository { return f.friendRepo }
func (f *RepositoryFactory) LikeRepository() repositories.LikeRepository     { return f.likeRepo }
func (f *RepositoryFactory) GenreRepository() repositories.GenreRepository   { return f.genreRepo }
func (f *RepositoryFactory) MpaRepository() repositories.MpaRepository       { return f.mpaRepo }
