package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// GenreRepository читает справочник genre.
type GenreRepository struct {
	pool PgxPoolInterface
}

// NewGenreRepository создает новый экземпляр репозитория жанров.
func NewGenreRepository(pool PgxPoolInterface) repositories.GenreRepository {
	return &GenreRepository{pool: pool}
}

func (r *GenreRepository) GetByID(ctx context.Context, id int64) (*entities.Genre, error) {
	const op = "GenreRepository.GetByID"

	var genre entities.Genre
	err := r.pool.QueryRow(ctx, `SELECT genre_id, name FROM genre WHERE genre_id = $1`, id).
		Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFoundError(op, "genre %d not found", id)
		}
		return nil, mapError(op, err)
	}
	return &genre, nil
}

func (r *GenreRepository) GetAll(ctx context.Context) ([]entities.Genre, error) {
	const op = "GenreRepository.GetAll"

	rows, err := r.pool.Query(ctx, `SELECT genre_id, name FROM genre ORDER BY genre_id`)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	genres := make([]entities.Genre, 0)
	for rows.Next() {
		var genre entities.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, mapError(op, err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return genres, nil
}

// MpaRepository читает справочник rating.
type MpaRepository struct {
	pool PgxPoolInterface
}

// NewMpaRepository создает новый экземпляр репозитория рейтингов.
func NewMpaRepository(pool PgxPoolInterface) repositories.MpaRepository {
	return &MpaRepository{pool: pool}
}

func (r *MpaRepository) GetByID(ctx context.Context, id int64) (*entities.Mpa, error) {
	const op = "MpaRepository.GetByID"

	var mpa entities.Mpa
	err := r.pool.QueryRow(ctx, `SELECT rating_id, name FROM rating WHERE rating_id = $1`, id).
		Scan(&mpa.ID, &mpa.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFoundError(op, "mpa %d not found", id)
		}
		return nil, mapError(op, err)
	}
	return &mpa, nil
}

func (r *MpaRepository) GetAll(ctx context.Context) ([]entities.Mpa, error) {
	const op = "MpaRepository.GetAll"

	rows, err := r.pool.Query(ctx, `SELECT rating_id, name FROM rating ORDER BY rating_id`)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	ratings := make([]entities.Mpa, 0)
	for rows.Next() {
		var mpa entities.Mpa
		if err := rows.Scan(&mpa.ID, &mpa.Name); err != nil {
			return nil, mapError(op, err)
		}
		ratings = append(ratings, mpa)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return ratings, nil
}
