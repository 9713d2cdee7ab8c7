package memory

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// GenreRepository отдает фиксированный справочник жанров.
type GenreRepository struct {
	store *Store
}

func (r *GenreRepository) GetByID(_ context.Context, id int64) (*entities.Genre, error) {
	genre, ok := r.store.genres[id]
	if !ok {
		return nil, entities.NewNotFoundError("GenreRepository.GetByID", "genre %d not found", id)
	}
	return &genre, nil
}

func (r *GenreRepository) GetAll(_ context.Context) ([]entities.Genre, error) {
	genres := make([]entities.Genre, 0, len(r.store.genres))
	for _, id := range sortedKeys(r.store.genres) {
		genres = append(genres, r.store.genres[id])
	}
	return genres, nil
}

// MpaRepository отдает фиксированный справочник рейтингов.
type MpaRepository struct {
	store *Store
}

func (r *MpaRepository) GetByID(_ context.Context, id int64) (*entities.Mpa, error) {
	mpa, ok := r.store.ratings[id]
	if !ok {
		return nil, entities.NewNotFoundError("MpaRepository.GetByID", "mpa %d not found", id)
	}
	return &mpa, nil
}

func (r *MpaRepository) GetAll(_ context.Context) ([]entities.Mpa, error) {
	ratings := make([]entities.Mpa, 0, len(r.store.ratings))
	for _, id := range sortedKeys(r.store.ratings) {
		ratings = append(ratings, r.store.ratings[id])
	}
	return ratings, nil
}
