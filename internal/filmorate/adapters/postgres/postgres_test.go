package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/postgres"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

var (
	userColumns   = []string{"user_id", "email", "login", "name", "birthday"}
	filmColumns   = []string{"film_id", "name", "description", "release_date", "duration", "rating_id", "rating_name"}
	pairColumns   = []string{"owner_id", "related_id"}
	genreColumns  = []string{"film_id", "genre_id", "name"}
	birthday      = time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC)
	releaseDate   = time.Date(1997, time.December, 16, 0, 0, 0, 0, time.UTC)
	sqlInsertUser = regexp.QuoteMeta("INSERT INTO user_app (email, login, name, birthday)")
	sqlSelectUser = regexp.QuoteMeta("FROM user_app WHERE user_id = $1")
	sqlFriendsOf  = regexp.QuoteMeta("FROM friend_user") + `\s+` + regexp.QuoteMeta("WHERE user_id = ANY($1)")
	sqlSelectFilm = regexp.QuoteMeta("JOIN rating r ON r.rating_id = f.rating_id WHERE f.film_id = $1")
	sqlGenresOf   = regexp.QuoteMeta("FROM film_genre fg")
	sqlLikesOf    = regexp.QuoteMeta("FROM like_user") + `\s+` + regexp.QuoteMeta("WHERE film_id = ANY($1)")
	sqlUsersExist = regexp.QuoteMeta("SELECT user_id FROM user_app WHERE user_id = ANY($1)")
	sqlFilmExists = regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM film WHERE film_id = $1)")
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), log)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestNewRepositoryFactory(t *testing.T) {
	factory := postgres.NewRepositoryFactory(&pgxpool.Pool{})

	require.NotNil(t, factory)
	assert.Implements(t, (*repositories.Factory)(nil), factory)
	assert.Same(t, factory.FilmRepository(), factory.FilmRepository())
	_, ok := factory.UserRepository().(*postgres.UserRepository)
	assert.True(t, ok)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	input := &entities.User{Email: "a@x.com", Login: "a", Name: "a", Birthday: birthday}

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlInsertUser).
			WithArgs("a@x.com", "a", "a", birthday).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(7)))

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, int64(7), created.ID)
		assert.Equal(t, "a@x.com", created.Email)
		assert.Zero(t, input.ID, "input must not be mutated")
	})

	t.Run("database error is internal", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlInsertUser).
			WithArgs("a@x.com", "a", "a", birthday).
			WillReturnError(errDatabaseConnection)

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)
		require.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, entities.ErrInternal)
		assert.ErrorIs(t, err, errDatabaseConnection)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("found with friends", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlSelectUser).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "a@x.com", "a", "Alice", birthday))
		mock.ExpectQuery(sqlFriendsOf).
			WithArgs([]int64{1}).
			WillReturnRows(pgxmock.NewRows(pairColumns).AddRow(int64(1), int64(2)).AddRow(int64(1), int64(5)))

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, []int64{2, 5}, user.Friends)
	})

	t.Run("absent returns nil without error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlSelectUser).
			WithArgs(int64(9)).
			WillReturnRows(pgxmock.NewRows(userColumns))

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, 9)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := testContext(t)
	user := &entities.User{ID: 3, Email: "c@x.com", Login: "c", Name: "c", Birthday: birthday}

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE user_app")).
			WithArgs(int64(3), "c@x.com", "c", "c", birthday).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		updated, err := postgres.NewUserRepository(mock).Update(ctx, user)
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("success reloads user", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE user_app")).
			WithArgs(int64(3), "c@x.com", "c", "c", birthday).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(sqlSelectUser).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(3), "c@x.com", "c", "c", birthday))
		mock.ExpectQuery(sqlFriendsOf).
			WithArgs([]int64{3}).
			WillReturnRows(pgxmock.NewRows(pairColumns))

		updated, err := postgres.NewUserRepository(mock).Update(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(3), updated.ID)
		assert.Empty(t, updated.Friends)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "deleted", affected: 1, want: true},
		{name: "absent", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_app WHERE user_id = $1")).
				WithArgs(int64(4)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			deleted, err := postgres.NewUserRepository(mock).Delete(ctx, 4)
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)
		})
	}
}

func TestUserRepository_ClearTimeout(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_app")).
		WillReturnError(context.DeadlineExceeded)

	err := postgres.NewUserRepository(mock).Clear(testContext(t))
	assert.ErrorIs(t, err, entities.ErrUnavailable)
}

func expectFilmLoad(mock pgxmock.PgxPoolIface, id int64) {
	mock.ExpectQuery(sqlSelectFilm).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(filmColumns).
			AddRow(id, "Titanic", "ship", releaseDate, 180, int64(2), "PG"))
	mock.ExpectQuery(sqlGenresOf).
		WithArgs([]int64{id}).
		WillReturnRows(pgxmock.NewRows(genreColumns).
			AddRow(id, int64(1), "Комедия").
			AddRow(id, int64(2), "Драма"))
	mock.ExpectQuery(sqlLikesOf).
		WithArgs([]int64{id}).
		WillReturnRows(pgxmock.NewRows(pairColumns).AddRow(id, int64(3)))
}

func titanic() *entities.Film {
	return &entities.Film{
		Name:        "Titanic",
		Description: "ship",
		ReleaseDate: releaseDate,
		Duration:    180,
		Mpa:         entities.Mpa{ID: 2},
		Genres:      []entities.Genre{{ID: 1}, {ID: 2}},
	}
}

func TestFilmRepository_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("success in transaction", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO film (name, description, release_date, duration, rating_id)")).
			WithArgs("Titanic", "ship", releaseDate, 180, int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"film_id"}).AddRow(int64(11)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO film_genre (film_id, genre_id)")).
			WithArgs(int64(11), []int64{1, 2}).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		expectFilmLoad(mock, 11)
		mock.ExpectCommit()

		film, err := postgres.NewFilmRepository(mock).Create(ctx, titanic())
		require.NoError(t, err)
		assert.Equal(t, int64(11), film.ID)
		assert.Equal(t, "PG", film.Mpa.Name)
		assert.Equal(t, []entities.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}, film.Genres)
		assert.Equal(t, 1, film.Likes())
	})

	t.Run("unknown rating rolls back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO film")).
			WithArgs("Titanic", "ship", releaseDate, 180, int64(2)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
		mock.ExpectRollback()

		film, err := postgres.NewFilmRepository(mock).Create(ctx, titanic())
		assert.Nil(t, film)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("begin failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errDatabaseConnection)

		_, err := postgres.NewFilmRepository(mock).Create(ctx, titanic())
		assert.ErrorIs(t, err, entities.ErrInternal)
	})
}

func TestFilmRepository_UpdateNotFound(t *testing.T) {
	mock := newMock(t)
	film := titanic()
	film.ID = 5

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE film")).
		WithArgs(int64(5), "Titanic", "ship", releaseDate, 180, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	updated, err := postgres.NewFilmRepository(mock).Update(testContext(t), film)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestFilmRepository_UpdateReplacesGenres(t *testing.T) {
	mock := newMock(t)
	film := titanic()
	film.ID = 11

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE film")).
		WithArgs(int64(11), "Titanic", "ship", releaseDate, 180, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM film_genre WHERE film_id = $1")).
		WithArgs(int64(11)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO film_genre")).
		WithArgs(int64(11), []int64{1, 2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	expectFilmLoad(mock, 11)
	mock.ExpectCommit()

	updated, err := postgres.NewFilmRepository(mock).Update(testContext(t), film)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, updated.UserLikes)
}

func TestFilmRepository_Popular(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY COUNT(l.user_id) DESC, f.film_id ASC")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(filmColumns).
			AddRow(int64(3), "third", "", releaseDate, 90, int64(1), "G").
			AddRow(int64(1), "first", "", releaseDate, 100, int64(1), "G"))
	mock.ExpectQuery(sqlGenresOf).
		WithArgs([]int64{3, 1}).
		WillReturnRows(pgxmock.NewRows(genreColumns))
	mock.ExpectQuery(sqlLikesOf).
		WithArgs([]int64{3, 1}).
		WillReturnRows(pgxmock.NewRows(pairColumns).
			AddRow(int64(1), int64(8)).
			AddRow(int64(3), int64(7)).
			AddRow(int64(3), int64(8)))

	films, err := postgres.NewFilmRepository(mock).Popular(testContext(t), 2)
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, int64(3), films[0].ID)
	assert.Equal(t, 2, films[0].Likes())
	assert.Equal(t, 1, films[1].Likes())
}

func TestFriendRepository_AddFriendship(t *testing.T) {
	ctx := testContext(t)

	t.Run("writes both directions in canonical order", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlUsersExist).
			WithArgs([]int64{2, 1}).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(1)).AddRow(int64(2)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO friend_user (user_id, friend_id, status_friend)")).
			WithArgs(int64(1), int64(2), "CONFIRMED").
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		mock.ExpectCommit()

		require.NoError(t, postgres.NewFriendRepository(mock).AddFriendship(ctx, 2, 1))
	})

	t.Run("existing friendship is a conflict", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlUsersExist).
			WithArgs([]int64{1, 2}).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(1)).AddRow(int64(2)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO friend_user")).
			WithArgs(int64(1), int64(2), "CONFIRMED").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectRollback()

		err := postgres.NewFriendRepository(mock).AddFriendship(ctx, 1, 2)
		assert.ErrorIs(t, err, entities.ErrConflict)
	})

	t.Run("missing user", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlUsersExist).
			WithArgs([]int64{1, 99}).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
		mock.ExpectRollback()

		err := postgres.NewFriendRepository(mock).AddFriendship(ctx, 1, 99)
		require.ErrorIs(t, err, entities.ErrNotFound)
		assert.Equal(t, "user 99 not found", entities.MessageOf(err))
	})
}

func TestFriendRepository_CommonFriendIDs(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlUsersExist).
		WithArgs([]int64{1, 2}).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN friend_user b ON b.friend_id = a.friend_id")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"friend_id"}).AddRow(int64(3)))

	ids, err := postgres.NewFriendRepository(mock).CommonFriendIDs(testContext(t), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)
}

func TestLikeRepository(t *testing.T) {
	ctx := testContext(t)

	t.Run("duplicate like is a conflict", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlFilmExists).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(sqlUsersExist).WithArgs([]int64{2}).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(2)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO like_user (film_id, user_id)")).
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectRollback()

		err := postgres.NewLikeRepository(mock).AddLike(ctx, 1, 2)
		assert.ErrorIs(t, err, entities.ErrConflict)
	})

	t.Run("missing film", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(sqlFilmExists).WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err := postgres.NewLikeRepository(mock).AddLike(ctx, 5, 2)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("removing absent like is not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFilmExists).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(sqlUsersExist).WithArgs([]int64{2}).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(2)))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM like_user WHERE film_id = $1 AND user_id = $2")).
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewLikeRepository(mock).RemoveLike(ctx, 1, 2)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("liker ids", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFilmExists).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id")).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(2)).AddRow(int64(4)))

		ids, err := postgres.NewLikeRepository(mock).LikerIDs(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 4}, ids)
	})
}

func TestReferenceRepositories(t *testing.T) {
	ctx := testContext(t)

	t.Run("genre not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT genre_id, name FROM genre WHERE genre_id = $1")).
			WithArgs(int64(42)).
			WillReturnError(pgx.ErrNoRows)

		genre, err := postgres.NewGenreRepository(mock).GetByID(ctx, 42)
		assert.Nil(t, genre)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("all ratings", func(t *testing.T) {
		mock := newMock(t)
		rows := pgxmock.NewRows([]string{"rating_id", "name"})
		for _, r := range entities.Ratings() {
			rows.AddRow(r.ID, r.Name)
		}
		mock.ExpectQuery(regexp.QuoteMeta("SELECT rating_id, name FROM rating ORDER BY rating_id")).
			WillReturnRows(rows)

		ratings, err := postgres.NewMpaRepository(mock).GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.Ratings(), ratings)
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM rating WHERE rating_id = $1")).
			WithArgs(int64(1)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		_, err := postgres.NewMpaRepository(mock).GetByID(ctx, 1)
		assert.ErrorIs(t, err, entities.ErrConflict)
	})
}
