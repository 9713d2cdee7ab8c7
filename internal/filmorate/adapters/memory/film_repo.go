package memory

import (
	"cmp"
	"context"
	"slices"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmRepository хранит фильмы в памяти.
type FilmRepository struct {
	store *Store
}

// Create сохраняет фильм под новым ID. Лайки нового фильма всегда пусты.
func (r *FilmRepository) Create(_ context.Context, film *entities.Film) (*entities.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := film.Clone()
	stored.UserLikes = nil
	if err := s.resolveReferences("FilmRepository.Create", stored); err != nil {
		return nil, err
	}

	s.nextFilmID++
	stored.ID = s.nextFilmID
	s.films[stored.ID] = stored

	return s.filmView(stored.ID), nil
}

func (r *FilmRepository) Update(_ context.Context, film *entities.Film) (*entities.Film, error) {
	const op = "FilmRepository.Update"

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(op, film.ID); err != nil {
		return nil, err
	}
	stored := film.Clone()
	stored.UserLikes = nil
	if err := s.resolveReferences(op, stored); err != nil {
		return nil, err
	}
	s.films[stored.ID] = stored

	return s.filmView(stored.ID), nil
}

func (r *FilmRepository) FindByID(_ context.Context, id int64) (*entities.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filmView(id), nil
}

func (r *FilmRepository) GetAll(_ context.Context) ([]*entities.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]*entities.Film, 0, len(s.films))
	for _, id := range sortedKeys(s.films) {
		films = append(films, s.filmView(id))
	}
	return films, nil
}

// Popular сортирует копии фильмов и не меняет порядок хранения.
func (r *FilmRepository) Popular(_ context.Context, count int) ([]*entities.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]*entities.Film, 0, len(s.films))
	for _, id := range sortedKeys(s.films) {
		films = append(films, s.filmView(id))
	}
	slices.SortStableFunc(films, func(a, b *entities.Film) int {
		if c := cmp.Compare(b.Likes(), a.Likes()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if count >= 0 && count < len(films) {
		films = films[:count]
	}
	return films, nil
}

func (r *FilmRepository) Delete(_ context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return false, nil
	}
	delete(s.films, id)
	delete(s.likes, id)
	return true, nil
}

func (r *FilmRepository) Clear(_ context.Context) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.films)
	clear(s.likes)
	return nil
}
