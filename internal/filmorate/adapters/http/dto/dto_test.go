package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/domain/entities"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "date", input: `"1895-12-28"`, want: time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "datetime rejected", input: `"2020-01-01T10:00:00Z"`, wantErr: true},
		{name: "number rejected", input: `20200101`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dto.Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), dto.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time))
		})
	}

	t.Run("marshal drops time of day", func(t *testing.T) {
		d := dto.NewDate(time.Date(2001, time.October, 9, 23, 59, 0, 0, time.UTC))
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.JSONEq(t, `"2001-10-09"`, string(data))
	})

	t.Run("zero date is null", func(t *testing.T) {
		data, err := json.Marshal(dto.Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})
}

func TestFilmResponse(t *testing.T) {
	film := &entities.Film{
		ID:        7,
		Name:      "Titanic",
		Duration:  194,
		Mpa:       entities.Mpa{ID: 3, Name: "PG-13"},
		UserLikes: []int64{1, 2, 3},
	}

	data, err := json.Marshal(dto.NewFilmResponse(film))
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":7,"name":"Titanic","description":"","releaseDate":null,"duration":194,`+
		`"mpa":{"id":3,"name":"PG-13"},"genres":[],"likes":3}`, string(data))
}

func TestFilmRequestToEntity(t *testing.T) {
	req := dto.FilmRequest{
		Name:   "x",
		Mpa:    &dto.MpaDTO{ID: 2},
		Genres: []dto.GenreDTO{{ID: 3}, {ID: 1}},
	}

	film := req.ToEntity()

	assert.Equal(t, int64(2), film.Mpa.ID)
	assert.Equal(t, []int64{3, 1}, film.GenreIDs())

	noMpa := (&dto.FilmRequest{Name: "y"}).ToEntity()
	assert.Zero(t, noMpa.Mpa.ID)
	assert.Nil(t, noMpa.Genres)
}

func TestUserResponse(t *testing.T) {
	user := &entities.User{ID: 1, Email: "a@b.c", Login: "login"}

	resp := dto.NewUserResponse(user)

	assert.Equal(t, "login", resp.Name)
	assert.Equal(t, []int64{}, resp.Friends)
}
