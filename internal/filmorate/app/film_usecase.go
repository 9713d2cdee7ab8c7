package app

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodCreateFilm = "CreateFilm"
	methodUpdateFilm = "UpdateFilm"
	methodGetFilm    = "GetFilm"
	methodListFilms  = "ListFilms"
	methodDeleteFilm = "DeleteFilm"

	msgCreatingFilm = "creating film"
	msgFilmCreated  = "film created"
	msgUpdatingFilm = "updating film"
	msgFilmUpdated  = "film updated"
	msgFilmDeleted  = "film deleted"
	msgInvalidFilm  = "invalid film"

	msgErrCreateFilm      = "failed to create film"
	msgErrUpdateFilm      = "failed to update film"
	msgErrFindFilm        = "failed to find film"
	msgErrListFilms       = "failed to list films"
	msgErrDeleteFilm      = "failed to delete film"
	msgErrCheckReferences = "failed to check film references"

	msgFilmNotFound = "film %d not found"
)

// FilmUseCaseImpl реализует api.FilmService.
type FilmUseCaseImpl struct {
	films   repositories.FilmRepository
	genres  repositories.GenreRepository
	ratings repositories.MpaRepository
	popular cache.PopularCache
}

// NewFilmUseCase создает новый экземпляр сервиса фильмов.
func NewFilmUseCase(
	films repositories.FilmRepository,
	genres repositories.GenreRepository,
	ratings repositories.MpaRepository,
	popular cache.PopularCache,
) api.FilmService {
	return &FilmUseCaseImpl{
		films:   films,
		genres:  genres,
		ratings: ratings,
		popular: popular,
	}
}

// Create проверяет фильм и его справочные ссылки и сохраняет его.
func (f *FilmUseCaseImpl) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	const op = "FilmService.Create"
	log := logger.Log(ctx).With(zap.String("method", methodCreateFilm), zap.String("name", film.Name))
	log.Debug(ctx, msgCreatingFilm)

	candidate, err := f.prepare(ctx, op, film)
	if err != nil {
		log.Debug(ctx, msgInvalidFilm, zap.Error(err))
		return nil, err
	}

	created, err := f.films.Create(ctx, candidate)
	if err != nil {
		log.Error(ctx, msgErrCreateFilm, zap.Error(err))
		return nil, err
	}
	invalidatePopular(ctx, f.popular)

	log.Info(ctx, msgFilmCreated, zap.Int64("id", created.ID))
	return created, nil
}

// Update заменяет поля и жанры фильма. Лайки сохраняются.
func (f *FilmUseCaseImpl) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	const op = "FilmService.Update"
	log := logger.Log(ctx).With(zap.String("method", methodUpdateFilm), zap.Int64("id", film.ID))
	log.Debug(ctx, msgUpdatingFilm)

	if film.ID <= 0 {
		return nil, entities.NewValidationError(op, msgMissingID)
	}
	candidate, err := f.prepare(ctx, op, film)
	if err != nil {
		log.Debug(ctx, msgInvalidFilm, zap.Error(err))
		return nil, err
	}

	updated, err := f.films.Update(ctx, candidate)
	if err != nil {
		if !entities.IsNotFound(err) {
			log.Error(ctx, msgErrUpdateFilm, zap.Error(err))
		}
		return nil, err
	}
	invalidatePopular(ctx, f.popular)

	log.Info(ctx, msgFilmUpdated)
	return updated, nil
}

func (f *FilmUseCaseImpl) Get(ctx context.Context, id int64) (*entities.Film, error) {
	film, err := f.films.FindByID(ctx, id)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrFindFilm, zap.String("method", methodGetFilm), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if film == nil {
		return nil, entities.NewNotFoundError("FilmService.Get", msgFilmNotFound, id)
	}
	return film, nil
}

func (f *FilmUseCaseImpl) List(ctx context.Context) ([]*entities.Film, error) {
	films, err := f.films.GetAll(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListFilms, zap.String("method", methodListFilms), zap.Error(err))
		return nil, err
	}
	return films, nil
}

// Delete удаляет фильм вместе с лайками и жанрами.
func (f *FilmUseCaseImpl) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteFilm), zap.Int64("id", id))

	deleted, err := f.films.Delete(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrDeleteFilm, zap.Error(err))
		return err
	}
	if !deleted {
		return entities.NewNotFoundError("FilmService.Delete", msgFilmNotFound, id)
	}
	invalidatePopular(ctx, f.popular)

	log.Info(ctx, msgFilmDeleted)
	return nil
}

// prepare возвращает проверенную копию фильма с упорядоченными жанрами.
// Неизвестные рейтинг и жанры считаются ошибкой валидации запроса.
func (f *FilmUseCaseImpl) prepare(ctx context.Context, op string, film *entities.Film) (*entities.Film, error) {
	candidate := film.Clone()
	if err := validateFilm(op, candidate); err != nil {
		return nil, err
	}
	candidate.NormalizeGenres()

	mpa, err := f.ratings.GetByID(ctx, candidate.Mpa.ID)
	if err != nil {
		if entities.IsNotFound(err) {
			return nil, entities.NewValidationError(op, msgUnknownMpa, candidate.Mpa.ID)
		}
		logger.Log(ctx).Error(ctx, msgErrCheckReferences, zap.Error(err))
		return nil, err
	}
	candidate.Mpa = *mpa

	for i, genre := range candidate.Genres {
		resolved, err := f.genres.GetByID(ctx, genre.ID)
		if err != nil {
			if entities.IsNotFound(err) {
				return nil, entities.NewValidationError(op, msgUnknownGenre, genre.ID)
			}
			logger.Log(ctx).Error(ctx, msgErrCheckReferences, zap.Error(err))
			return nil, err
		}
		candidate.Genres[i] = *resolved
	}

	return candidate, nil
}
