// Package api определяет входные порты прикладного слоя.
package api

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserService - операции с пользователями.
type UserService interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	Get(ctx context.Context, id int64) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Delete(ctx context.Context, id int64) error
}

// FriendService - операции с дружбой.
type FriendService interface {
	AddFriend(ctx context.Context, userID, friendID int64) ([]int64, error)
	RemoveFriend(ctx context.Context, userID, friendID int64) ([]int64, error)
	ListFriends(ctx context.Context, userID int64) ([]*entities.User, error)
	ListCommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error)
}

// FilmService - операции с фильмами.
type FilmService interface {
	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)
	Update(ctx context.Context, film *entities.Film) (*entities.Film, error)
	Get(ctx context.Context, id int64) (*entities.Film, error)
	List(ctx context.Context) ([]*entities.Film, error)
	Delete(ctx context.Context, id int64) error
}

// LikeService - лайки и рейтинг популярности.
type LikeService interface {
	AddLike(ctx context.Context, filmID, userID int64) ([]int64, error)
	RemoveLike(ctx context.Context, filmID, userID int64) ([]int64, error)
	Popular(ctx context.Context, count int) ([]*entities.Film, error)
}

// ReferenceService - справочники жанров и рейтингов.
type ReferenceService interface {
	Genre(ctx context.Context, id int64) (*entities.Genre, error)
	Genres(ctx context.Context) ([]entities.Genre, error)
	Mpa(ctx context.Context, id int64) (*entities.Mpa, error)
	Ratings(ctx context.Context) ([]entities.Mpa, error)
}
