package app

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const msgErrReadReference = "failed to read reference data"

// ReferenceUseCaseImpl реализует api.ReferenceService.
type ReferenceUseCaseImpl struct {
	genres  repositories.GenreRepository
	ratings repositories.MpaRepository
}

// NewReferenceUseCase создает сервис справочников.
func NewReferenceUseCase(genres repositories.GenreRepository, ratings repositories.MpaRepository) api.ReferenceService {
	return &ReferenceUseCaseImpl{genres: genres, ratings: ratings}
}

func (r *ReferenceUseCaseImpl) Genre(ctx context.Context, id int64) (*entities.Genre, error) {
	genre, err := r.genres.GetByID(ctx, id)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", "Genre")), msgErrReadReference, err)
		return nil, err
	}
	return genre, nil
}

func (r *ReferenceUseCaseImpl) Genres(ctx context.Context) ([]entities.Genre, error) {
	genres, err := r.genres.GetAll(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrReadReference, zap.String("method", "Genres"), zap.Error(err))
		return nil, err
	}
	return genres, nil
}

func (r *ReferenceUseCaseImpl) Mpa(ctx context.Context, id int64) (*entities.Mpa, error) {
	mpa, err := r.ratings.GetByID(ctx, id)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", "Mpa")), msgErrReadReference, err)
		return nil, err
	}
	return mpa, nil
}

func (r *ReferenceUseCaseImpl) Ratings(ctx context.Context) ([]entities.Mpa, error) {
	ratings, err := r.ratings.GetAll(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrReadReference, zap.String("method", "Ratings"), zap.Error(err))
		return nil, err
	}
	return ratings, nil
}
