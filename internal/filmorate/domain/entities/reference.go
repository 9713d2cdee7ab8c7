package entities

// Genre - жанр фильма.
type Genre struct {
	ID   int64
	Name string
}

// Mpa - возрастной рейтинг Motion Picture Association.
type Mpa struct {
	ID   int64
	Name string
}

// Genres возвращает фиксированный справочник жанров.
func Genres() []Genre {
	return []Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
}

// Ratings возвращает фиксированный справочник рейтингов.
func Ratings() []Mpa {
	return []Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}
