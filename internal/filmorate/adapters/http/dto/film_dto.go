package dto

import "filmorate/internal/filmorate/domain/entities"

// GenreDTO - жанр в запросах и ответах.
type GenreDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// MpaDTO - рейтинг в запросах и ответах.
type MpaDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// FilmRequest - тело запросов создания и обновления фильма.
type FilmRequest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"releaseDate"`
	Duration    int        `json:"duration"`
	Mpa         *MpaDTO    `json:"mpa"`
	Genres      []GenreDTO `json:"genres"`
}

// FilmResponse - фильм в ответе. Likes вычисляется по множеству лайков.
type FilmResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"releaseDate"`
	Duration    int        `json:"duration"`
	Mpa         MpaDTO     `json:"mpa"`
	Genres      []GenreDTO `json:"genres"`
	Likes       int        `json:"likes"`
}

// ToEntity преобразует запрос в сущность.
func (r *FilmRequest) ToEntity() *entities.Film {
	film := &entities.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate.Time,
		Duration:    r.Duration,
	}
	if r.Mpa != nil {
		film.Mpa = entities.Mpa{ID: r.Mpa.ID}
	}
	if len(r.Genres) > 0 {
		film.Genres = make([]entities.Genre, 0, len(r.Genres))
		for _, g := range r.Genres {
			film.Genres = append(film.Genres, entities.Genre{ID: g.ID})
		}
	}
	return film
}

// NewFilmResponse строит ответ по сущности.
func NewFilmResponse(film *entities.Film) *FilmResponse {
	return &FilmResponse{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: NewDate(film.ReleaseDate),
		Duration:    film.Duration,
		Mpa:         NewMpaDTO(film.Mpa),
		Genres:      NewGenreDTOs(film.Genres),
		Likes:       film.Likes(),
	}
}

// NewFilmResponses строит список ответов.
func NewFilmResponses(films []*entities.Film) []*FilmResponse {
	out := make([]*FilmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, NewFilmResponse(f))
	}
	return out
}

func NewGenreDTO(g entities.Genre) GenreDTO {
	return GenreDTO{ID: g.ID, Name: g.Name}
}

// NewGenreDTOs возвращает [] вместо null для фильма без жанров.
func NewGenreDTOs(genres []entities.Genre) []GenreDTO {
	out := make([]GenreDTO, 0, len(genres))
	for _, g := range genres {
		out = append(out, NewGenreDTO(g))
	}
	return out
}

func NewMpaDTO(m entities.Mpa) MpaDTO {
	return MpaDTO{ID: m.ID, Name: m.Name}
}

func NewMpaDTOs(ratings []entities.Mpa) []MpaDTO {
	out := make([]MpaDTO, 0, len(ratings))
	for _, m := range ratings {
		out = append(out, NewMpaDTO(m))
	}
	return out
}
