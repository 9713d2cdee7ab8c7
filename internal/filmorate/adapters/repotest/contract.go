// Package repotest содержит общие проверки контракта репозиториев,
// которые запускаются для каждой реализации хранилища.
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// FactoryBuilder возвращает пустое хранилище для одного подтеста.
type FactoryBuilder func(t *testing.T) repositories.Factory

// Run выполняет все проверки контракта.
func Run(t *testing.T, build FactoryBuilder) {
	t.Run("user round trip", func(t *testing.T) { testUserRoundTrip(t, build(t)) })
	t.Run("user update and delete", func(t *testing.T) { testUserUpdateDelete(t, build(t)) })
	t.Run("film round trip", func(t *testing.T) { testFilmRoundTrip(t, build(t)) })
	t.Run("film update keeps likes", func(t *testing.T) { testFilmUpdate(t, build(t)) })
	t.Run("friendship symmetry", func(t *testing.T) { testFriendship(t, build(t)) })
	t.Run("concurrent friendship", func(t *testing.T) { testConcurrentFriendship(t, build(t)) })
	t.Run("likes", func(t *testing.T) { testLikes(t, build(t)) })
	t.Run("popular ordering", func(t *testing.T) { testPopular(t, build(t)) })
	t.Run("cascade delete", func(t *testing.T) { testCascade(t, build(t)) })
	t.Run("clear", func(t *testing.T) { testClear(t, build(t)) })
	t.Run("reference data", func(t *testing.T) { testReference(t, build(t)) })
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewUser возвращает корректного пользователя с заданным логином.
func NewUser(login string) *entities.User {
	return &entities.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: date(1990, time.May, 17),
	}
}

// NewFilm возвращает корректный фильм с заданным названием.
func NewFilm(name string) *entities.Film {
	return &entities.Film{
		Name:        name,
		Description: "description of " + name,
		ReleaseDate: date(1997, time.December, 16),
		Duration:    120,
		Mpa:         entities.Mpa{ID: 2},
		Genres:      []entities.Genre{{ID: 2}, {ID: 1}},
	}
}

func createUsers(t *testing.T, repo repositories.UserRepository, logins ...string) []*entities.User {
	t.Helper()
	users := make([]*entities.User, 0, len(logins))
	for _, login := range logins {
		user, err := repo.Create(context.Background(), NewUser(login))
		require.NoError(t, err)
		users = append(users, user)
	}
	return users
}

func createFilms(t *testing.T, repo repositories.FilmRepository, names ...string) []*entities.Film {
	t.Helper()
	films := make([]*entities.Film, 0, len(names))
	for _, name := range names {
		film, err := repo.Create(context.Background(), NewFilm(name))
		require.NoError(t, err)
		films = append(films, film)
	}
	return films
}

func testUserRoundTrip(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	repo := f.UserRepository()

	input := NewUser("alice")
	created, err := repo.Create(ctx, input)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, input.Email, found.Email)
	assert.Equal(t, input.Login, found.Login)
	assert.Equal(t, input.Name, found.Name)
	assert.True(t, input.Birthday.Equal(found.Birthday))
	assert.Empty(t, found.Friends)

	missing, err := repo.FindByID(ctx, created.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)

	second, err := repo.Create(ctx, NewUser("bob"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, created.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)

	resolved, err := repo.FindByIDs(ctx, []int64{second.ID, created.ID + 1000, created.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, created.ID, resolved[0].ID)
	assert.Equal(t, second.ID, resolved[1].ID)
}

func testUserUpdateDelete(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	repo := f.UserRepository()
	user := createUsers(t, repo, "carol")[0]

	user.Name = "Carol"
	user.Email = "carol@films.org"
	updated, err := repo.Update(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Carol", updated.Name)
	assert.Equal(t, "carol@films.org", updated.Email)

	ghost := NewUser("ghost")
	ghost.ID = user.ID + 1000
	_, err = repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testFilmRoundTrip(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	repo := f.FilmRepository()

	input := NewFilm("Titanic")
	created, err := repo.Create(ctx, input)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Titanic", found.Name)
	assert.Equal(t, input.Description, found.Description)
	assert.Equal(t, 120, found.Duration)
	assert.True(t, input.ReleaseDate.Equal(found.ReleaseDate))
	assert.Equal(t, entities.Mpa{ID: 2, Name: "PG"}, found.Mpa)
	assert.Equal(t, []entities.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}, found.Genres)
	assert.Zero(t, found.Likes())

	missing, err := repo.FindByID(ctx, created.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testFilmUpdate(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	user := createUsers(t, f.UserRepository(), "dave")[0]
	film := createFilms(t, f.FilmRepository(), "Alien")[0]
	require.NoError(t, f.LikeRepository().AddLike(ctx, film.ID, user.ID))

	film.Name = "Aliens"
	film.Genres = []entities.Genre{{ID: 6}}
	film.Mpa = entities.Mpa{ID: 4}
	updated, err := f.FilmRepository().Update(ctx, film)
	require.NoError(t, err)
	assert.Equal(t, "Aliens", updated.Name)
	assert.Equal(t, []entities.Genre{{ID: 6, Name: "Боевик"}}, updated.Genres)
	assert.Equal(t, "R", updated.Mpa.Name)
	assert.Equal(t, []int64{user.ID}, updated.UserLikes)

	ghost := NewFilm("ghost")
	ghost.ID = film.ID + 1000
	_, err = f.FilmRepository().Update(ctx, ghost)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func testFriendship(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	users := createUsers(t, f.UserRepository(), "a", "b", "c")
	a, b, c := users[0].ID, users[1].ID, users[2].ID
	friends := f.FriendRepository()

	require.NoError(t, friends.AddFriendship(ctx, a, b))

	ids, err := friends.FriendIDs(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{b}, ids)
	ids, err = friends.FriendIDs(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids)

	err = friends.AddFriendship(ctx, a, b)
	assert.ErrorIs(t, err, entities.ErrConflict)
	err = friends.AddFriendship(ctx, b, a)
	assert.ErrorIs(t, err, entities.ErrConflict)

	err = friends.AddFriendship(ctx, a, c+1000)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	require.NoError(t, friends.AddFriendship(ctx, a, c))
	require.NoError(t, friends.AddFriendship(ctx, b, c))
	common, err := friends.CommonFriendIDs(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{c}, common)

	user, err := f.UserRepository().FindByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{b, c}, user.Friends)

	require.NoError(t, friends.RemoveFriendship(ctx, a, b))
	require.NoError(t, friends.RemoveFriendship(ctx, a, b), "removal must be idempotent")
	ids, err = friends.FriendIDs(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{c}, ids)

	err = friends.RemoveFriendship(ctx, a, c+1000)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	_, err = friends.FriendIDs(ctx, c+1000)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	_, err = friends.CommonFriendIDs(ctx, a, c+1000)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func testConcurrentFriendship(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	users := createUsers(t, f.UserRepository(), "x", "y")
	x, y := users[0].ID, users[1].ID

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				errs[i] = f.FriendRepository().AddFriendship(ctx, x, y)
			} else {
				errs[i] = f.FriendRepository().AddFriendship(ctx, y, x)
			}
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, entities.ErrConflict)
	}
	assert.Equal(t, 1, successes)

	ids, err := f.FriendRepository().FriendIDs(ctx, y)
	require.NoError(t, err)
	assert.Equal(t, []int64{x}, ids)
}

func testLikes(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	users := createUsers(t, f.UserRepository(), "u1", "u2")
	film := createFilms(t, f.FilmRepository(), "Titanic")[0]
	likes := f.LikeRepository()

	require.NoError(t, likes.AddLike(ctx, film.ID, users[0].ID))
	require.NoError(t, likes.AddLike(ctx, film.ID, users[1].ID))
	assert.ErrorIs(t, likes.AddLike(ctx, film.ID, users[0].ID), entities.ErrConflict)

	ids, err := likes.LikerIDs(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{users[0].ID, users[1].ID}, ids)

	require.NoError(t, likes.RemoveLike(ctx, film.ID, users[0].ID))
	assert.ErrorIs(t, likes.RemoveLike(ctx, film.ID, users[0].ID), entities.ErrNotFound)

	found, err := f.FilmRepository().FindByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Likes())
	assert.Equal(t, len(found.UserLikes), found.Likes())

	assert.ErrorIs(t, likes.AddLike(ctx, film.ID+1000, users[0].ID), entities.ErrNotFound)
	assert.ErrorIs(t, likes.AddLike(ctx, film.ID, users[1].ID+1000), entities.ErrNotFound)
	_, err = likes.LikerIDs(ctx, film.ID+1000)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func testPopular(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	users := createUsers(t, f.UserRepository(), "p1", "p2", "p3")
	films := createFilms(t, f.FilmRepository(), "first", "second", "third", "fourth")
	likes := f.LikeRepository()

	require.NoError(t, likes.AddLike(ctx, films[2].ID, users[0].ID))
	require.NoError(t, likes.AddLike(ctx, films[2].ID, users[1].ID))
	require.NoError(t, likes.AddLike(ctx, films[1].ID, users[2].ID))
	require.NoError(t, likes.AddLike(ctx, films[3].ID, users[0].ID))

	popular, err := f.FilmRepository().Popular(ctx, 10)
	require.NoError(t, err)
	got := make([]int64, 0, len(popular))
	for _, film := range popular {
		got = append(got, film.ID)
	}
	assert.Equal(t, []int64{films[2].ID, films[1].ID, films[3].ID, films[0].ID}, got)
	assert.Equal(t, 2, popular[0].Likes())

	top, err := f.FilmRepository().Popular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, films[1].ID, top[1].ID)

	all, err := f.FilmRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, films[0].ID, all[0].ID, "ranking must not reorder storage")
}

func testCascade(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	users := createUsers(t, f.UserRepository(), "k1", "k2")
	film := createFilms(t, f.FilmRepository(), "Cascade")[0]

	require.NoError(t, f.FriendRepository().AddFriendship(ctx, users[0].ID, users[1].ID))
	require.NoError(t, f.LikeRepository().AddLike(ctx, film.ID, users[0].ID))

	deleted, err := f.UserRepository().Delete(ctx, users[0].ID)
	require.NoError(t, err)
	require.True(t, deleted)

	ids, err := f.FriendRepository().FriendIDs(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	likers, err := f.LikeRepository().LikerIDs(ctx, film.ID)
	require.NoError(t, err)
	assert.Empty(t, likers)

	require.NoError(t, f.LikeRepository().AddLike(ctx, film.ID, users[1].ID))
	deleted, err = f.FilmRepository().Delete(ctx, film.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	popular, err := f.FilmRepository().Popular(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, popular)
}

func testClear(t *testing.T, f repositories.Factory) {
	ctx := context.Background()
	users := createUsers(t, f.UserRepository(), "c1", "c2")
	createFilms(t, f.FilmRepository(), "c")
	require.NoError(t, f.FriendRepository().AddFriendship(ctx, users[0].ID, users[1].ID))

	require.NoError(t, f.FilmRepository().Clear(ctx))
	films, err := f.FilmRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, films)

	require.NoError(t, f.UserRepository().Clear(ctx))
	all, err := f.UserRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testReference(t *testing.T, f repositories.Factory) {
	ctx := context.Background()

	genres, err := f.GenreRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Genres(), genres)

	genre, err := f.GenreRepository().GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Триллер", genre.Name)

	_, err = f.GenreRepository().GetByID(ctx, 7)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	ratings, err := f.MpaRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Ratings(), ratings)

	mpa, err := f.MpaRepository().GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "PG-13", mpa.Name)

	_, err = f.MpaRepository().GetByID(ctx, 0)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
