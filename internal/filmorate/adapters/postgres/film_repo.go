package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const filmSelect = `
        SELECT f.film_id, f.name, f.description, f.release_date, f.duration, r.rating_id, r.name
        FROM film f
        JOIN rating r ON r.rating_id = f.rating_id`

const insertFilmGenres = `
        INSERT INTO film_genre (film_id, genre_id)
        SELECT $1, UNNEST($2::BIGINT[])
        ON CONFLICT DO NOTHING
    `

// FilmRepository реализует repositories.FilmRepository для PostgreSQL.
type FilmRepository struct {
	pool PgxPoolInterface
}

// NewFilmRepository создает новый экземпляр репозитория фильмов.
func NewFilmRepository(pool PgxPoolInterface) repositories.FilmRepository {
	return &FilmRepository{pool: pool}
}

// Create сохраняет фильм и его жанры в одной транзакции.
func (r *FilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	const op = "FilmRepository.Create"
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Create"))

	var created *entities.Film
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, `
        INSERT INTO film (name, description, release_date, duration, rating_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING film_id
    `, film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID).Scan(&id); err != nil {
			return err
		}

		if genreIDs := film.GenreIDs(); len(genreIDs) > 0 {
			if _, err := tx.Exec(ctx, insertFilmGenres, id, genreIDs); err != nil {
				return err
			}
		}

		films, err := loadFilms(ctx, tx, filmSelect+" WHERE f.film_id = $1", id)
		if err != nil {
			return err
		}
		if len(films) == 0 {
			return entities.NewInternalError(op, pgx.ErrNoRows)
		}
		created = films[0]
		return nil
	})
	if err != nil {
		log.Error(ctx, "error creating film", zap.Error(err))
		return nil, mapError(op, err)
	}

	return created, nil
}

// Update заменяет поля и жанры фильма. Лайки не меняются.
func (r *FilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	const op = "FilmRepository.Update"
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Update"))

	var updated *entities.Film
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
        UPDATE film
        SET name = $2, description = $3, release_date = $4, duration = $5, rating_id = $6
        WHERE film_id = $1
    `, film.ID, film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return entities.NewNotFoundError(op, "film %d not found", film.ID)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM film_genre WHERE film_id = $1`, film.ID); err != nil {
			return err
		}
		if genreIDs := film.GenreIDs(); len(genreIDs) > 0 {
			if _, err := tx.Exec(ctx, insertFilmGenres, film.ID, genreIDs); err != nil {
				return err
			}
		}

		films, err := loadFilms(ctx, tx, filmSelect+" WHERE f.film_id = $1", film.ID)
		if err != nil {
			return err
		}
		if len(films) == 0 {
			return entities.NewNotFoundError(op, "film %d not found", film.ID)
		}
		updated = films[0]
		return nil
	})
	if err != nil {
		if entities.IsNotFound(err) {
			log.Debug(ctx, "film not found for update", zap.Int64("id", film.ID))
		} else {
			log.Error(ctx, "error updating film", zap.Error(err))
		}
		return nil, mapError(op, err)
	}

	return updated, nil
}

// FindByID возвращает nil, nil, если фильм не найден.
func (r *FilmRepository) FindByID(ctx context.Context, id int64) (*entities.Film, error) {
	films, err := loadFilms(ctx, r.pool, filmSelect+" WHERE f.film_id = $1", id)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error finding film", zap.Int64("id", id), zap.Error(err))
		return nil, mapError("FilmRepository.FindByID", err)
	}
	if len(films) == 0 {
		return nil, nil
	}
	return films[0], nil
}

func (r *FilmRepository) GetAll(ctx context.Context) ([]*entities.Film, error) {
	films, err := loadFilms(ctx, r.pool, filmSelect+" ORDER BY f.film_id")
	if err != nil {
		logger.Log(ctx).Error(ctx, "error listing films", zap.Error(err))
		return nil, mapError("FilmRepository.GetAll", err)
	}
	return films, nil
}

// Popular ранжирует фильмы по числу лайков, при равенстве по порядку создания.
func (r *FilmRepository) Popular(ctx context.Context, count int) ([]*entities.Film, error) {
	query := `
        SELECT f.film_id, f.name, f.description, f.release_date, f.duration, r.rating_id, r.name
        FROM film f
        JOIN rating r ON r.rating_id = f.rating_id
        LEFT JOIN like_user l ON l.film_id = f.film_id
        GROUP BY f.film_id, r.rating_id, r.name
        ORDER BY COUNT(l.user_id) DESC, f.film_id ASC
        LIMIT $1
    `

	films, err := loadFilms(ctx, r.pool, query, count)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error ranking films", zap.Int("count", count), zap.Error(err))
		return nil, mapError("FilmRepository.Popular", err)
	}
	return films, nil
}

// Delete удаляет фильм. Лайки и жанры удаляются каскадно.
func (r *FilmRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM film WHERE film_id = $1`, id)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error deleting film", zap.Int64("id", id), zap.Error(err))
		return false, mapError("FilmRepository.Delete", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FilmRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM film`); err != nil {
		logger.Log(ctx).Error(ctx, "error clearing films", zap.Error(err))
		return mapError("FilmRepository.Clear", err)
	}
	return nil
}

// loadFilms читает фильмы в порядке запроса и дополняет их жанрами и лайками.
func loadFilms(ctx context.Context, q querier, query string, args ...interface{}) ([]*entities.Film, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	films := make([]*entities.Film, 0)
	byID := make(map[int64]*entities.Film)
	ids := make([]int64, 0)
	for rows.Next() {
		var film entities.Film
		if err := rows.Scan(
			&film.ID,
			&film.Name,
			&film.Description,
			&film.ReleaseDate,
			&film.Duration,
			&film.Mpa.ID,
			&film.Mpa.Name,
		); err != nil {
			rows.Close()
			return nil, err
		}
		films = append(films, &film)
		byID[film.ID] = &film
		ids = append(ids, film.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return films, nil
	}

	genreRows, err := q.Query(ctx, `
        SELECT fg.film_id, g.genre_id, g.name
        FROM film_genre fg
        JOIN genre g ON g.genre_id = fg.genre_id
        WHERE fg.film_id = ANY($1)
        ORDER BY fg.film_id, g.genre_id
    `, ids)
	if err != nil {
		return nil, err
	}
	for genreRows.Next() {
		var filmID int64
		var genre entities.Genre
		if err := genreRows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			genreRows.Close()
			return nil, err
		}
		if film, ok := byID[filmID]; ok {
			film.Genres = append(film.Genres, genre)
		}
	}
	genreRows.Close()
	if err := genreRows.Err(); err != nil {
		return nil, err
	}

	likeRows, err := q.Query(ctx, `
        SELECT film_id, user_id
        FROM like_user
        WHERE film_id = ANY($1)
        ORDER BY film_id, user_id
    `, ids)
	if err != nil {
		return nil, err
	}
	likes, err := collectPairs(likeRows)
	if err != nil {
		return nil, err
	}
	for _, film := range films {
		film.UserLikes = likes[film.ID]
	}

	return films, nil
}
