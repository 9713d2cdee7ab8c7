package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"filmorate/internal/filmorate/domain/entities"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockFilmRepository struct {
	mock.Mock
}

func (m *mockFilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	args := m.Called(ctx, film)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	args := m.Called(ctx, film)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) FindByID(ctx context.Context, id int64) (*entities.Film, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) GetAll(ctx context.Context) ([]*entities.Film, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) Popular(ctx context.Context, count int) ([]*entities.Film, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockFilmRepository) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockFriendRepository struct {
	mock.Mock
}

func (m *mockFriendRepository) AddFriendship(ctx context.Context, userID, friendID int64) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *mockFriendRepository) RemoveFriendship(ctx context.Context, userID, friendID int64) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *mockFriendRepository) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockFriendRepository) CommonFriendIDs(ctx context.Context, userID, otherID int64) ([]int64, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockLikeRepository struct {
	mock.Mock
}

func (m *mockLikeRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *mockLikeRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *mockLikeRepository) LikerIDs(ctx context.Context, filmID int64) ([]int64, error) {
	args := m.Called(ctx, filmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockGenreRepository struct {
	mock.Mock
}

func (m *mockGenreRepository) GetByID(ctx context.Context, id int64) (*entities.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Genre), args.Error(1)
}

func (m *mockGenreRepository) GetAll(ctx context.Context) ([]entities.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Genre), args.Error(1)
}

type mockMpaRepository struct {
	mock.Mock
}

func (m *mockMpaRepository) GetByID(ctx context.Context, id int64) (*entities.Mpa, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Mpa), args.Error(1)
}

func (m *mockMpaRepository) GetAll(ctx context.Context) ([]entities.Mpa, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Mpa), args.Error(1)
}

type mockPopularCache struct {
	mock.Mock
}

func (m *mockPopularCache) Version(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPopularCache) Get(ctx context.Context, version int64, count int) ([]*entities.Film, bool, error) {
	args := m.Called(ctx, version, count)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Film), args.Bool(1), args.Error(2)
}

func (m *mockPopularCache) Set(ctx context.Context, version int64, count int, films []*entities.Film) error {
	return m.Called(ctx, version, count, films).Error(0)
}

func (m *mockPopularCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockPopularCache) Close() error {
	return m.Called().Error(0)
}
