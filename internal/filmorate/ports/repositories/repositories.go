// Package repositories определяет порты хранилища каталога.
// Реализации обязаны сами обеспечивать ссылочную целостность и уникальность связей
// атомарно с операцией записи.
package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserRepository хранит пользователей.
type UserRepository interface {
	// Create присваивает новый ID и сохраняет пользователя.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	// Update возвращает entities.ErrNotFound для неизвестного ID.
	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	// FindByID возвращает nil, nil, если пользователь не найден.
	FindByID(ctx context.Context, id int64) (*entities.User, error)

	// FindByIDs возвращает найденных пользователей по возрастанию ID, отсутствующие пропускаются.
	FindByIDs(ctx context.Context, ids []int64) ([]*entities.User, error)

	GetAll(ctx context.Context) ([]*entities.User, error)

	// Delete удаляет пользователя вместе с его дружбой и лайками.
	Delete(ctx context.Context, id int64) (bool, error)

	Clear(ctx context.Context) error
}

// FilmRepository хранит фильмы.
type FilmRepository interface {
	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)

	// Update заменяет жанры, лайки сохраняются.
	Update(ctx context.Context, film *entities.Film) (*entities.Film, error)

	FindByID(ctx context.Context, id int64) (*entities.Film, error)

	GetAll(ctx context.Context) ([]*entities.Film, error)

	// Popular возвращает не более count фильмов по убыванию лайков, при равенстве по ID.
	Popular(ctx context.Context, count int) ([]*entities.Film, error)

	// Delete удаляет фильм вместе с лайками и жанрами.
	Delete(ctx context.Context, id int64) (bool, error)

	Clear(ctx context.Context) error
}

// FriendRepository хранит симметричные связи дружбы.
type FriendRepository interface {
	// AddFriendship записывает оба направления.
	// ErrNotFound, если нет одного из пользователей, ErrConflict, если связь уже есть.
	AddFriendship(ctx context.Context, userID, friendID int64) error

	// RemoveFriendship удаляет оба направления. Отсутствие связи не ошибка.
	RemoveFriendship(ctx context.Context, userID, friendID int64) error

	FriendIDs(ctx context.Context, userID int64) ([]int64, error)

	CommonFriendIDs(ctx context.Context, userID, otherID int64) ([]int64, error)
}

// LikeRepository хранит лайки фильмов.
type LikeRepository interface {
	// AddLike возвращает ErrConflict для повторного лайка.
	AddLike(ctx context.Context, filmID, userID int64) error

	// RemoveLike возвращает ErrNotFound, если лайка не было.
	RemoveLike(ctx context.Context, filmID, userID int64) error

	LikerIDs(ctx context.Context, filmID int64) ([]int64, error)
}

// GenreRepository - справочник жанров.
type GenreRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Genre, error)

	GetAll(ctx context.Context) ([]entities.Genre, error)
}

// MpaRepository - справочник рейтингов.
type MpaRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Mpa, error)

	GetAll(ctx context.Context) ([]entities.Mpa, error)
}

// Factory предоставляет все репозитории одного хранилища.
type Factory interface {
	UserRepository() UserRepository
	FilmRepository() FilmRepository
	FriendRepository() FriendRepository
	LikeRepository() LikeRepository
	GenreRepository() GenreRepository
	MpaRepository() MpaRepository
}
