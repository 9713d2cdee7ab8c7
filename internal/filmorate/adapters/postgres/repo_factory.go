package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate/internal/filmorate/ports/repositories"
)

// RepositoryFactory создает все репозитории поверх одного пула PostgreSQL.
type RepositoryFactory struct {
	userRepo   repositories.UserRepository
	filmRepo   repositories.FilmRepository
	friendRepo repositories.FriendRepository
	likeRepo   repositories.LikeRepository
	genreRepo  repositories.GenreRepository
	mpaRepo    repositories.MpaRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return newRepositoryFactory(pool)
}

func newRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:   NewUserRepository(pool),
		filmRepo:   NewFilmRepository(pool),
		friendRepo: NewFriendRepository(pool),
		likeRepo:   NewLikeRepository(pool),
		genreRepo:  NewGenreRepository(pool),
		mpaRepo:    NewMpaRepository(pool),
	}
}

func (f *RepositoryFactory) UserRepository() repositories.UserRepository     { return f.userRepo }
func (f *RepositoryFactory) FilmRepository() repositories.FilmRepository     { return f.filmRepo }
func (f *RepositoryFactory) FriendRepository() repositories.FriendRepository { return f.friendRepo }
func (f *RepositoryFactory) LikeRepository() repositories.LikeRepository     { return f.likeRepo }
func (f *RepositoryFactory) GenreRepository() repositories.GenreRepository   { return f.genreRepo }
func (f *RepositoryFactory) MpaRepository() repositories.MpaRepository       { return f.mpaRepo }
