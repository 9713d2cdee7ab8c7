package app

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"filmorate/internal/filmorate/domain/entities"
)

// Сообщения об ошибках валидации.
const (
	msgInvalidEmail       = "email must not be empty and must contain @"
	msgInvalidLogin       = "login must not be empty or contain whitespace"
	msgBirthdayRequired   = "birthday is required"
	msgBirthdayInFuture   = "birthday must not be in the future"
	msgEmptyFilmName      = "film name must not be empty"
	msgDescriptionTooLong = "description must be shorter than %d characters"
	msgReleaseTooEarly    = "release date must not be before %s"
	msgInvalidDuration    = "duration must be positive"
	msgMpaRequired        = "mpa rating is required"
	msgUnknownMpa         = "unknown mpa rating %d"
	msgUnknownGenre       = "unknown genre %d"
	msgSelfFriendship     = "user cannot befriend themselves"
	msgMissingID          = "id is required"
)

const dateLayout = "2006-01-02"

// validateUser проверяет поля пользователя и подставляет логин вместо пустого имени.
func validateUser(op string, user *entities.User, now time.Time) error {
	email := strings.TrimSpace(user.Email)
	if email == "" || !strings.Contains(email, "@") {
		return entities.NewValidationError(op, msgInvalidEmail)
	}
	if user.Login == "" || strings.IndexFunc(user.Login, unicode.IsSpace) >= 0 {
		return entities.NewValidationError(op, msgInvalidLogin)
	}
	if user.Birthday.IsZero() {
		return entities.NewValidationError(op, msgBirthdayRequired)
	}
	if truncateDay(user.Birthday).After(truncateDay(now)) {
		return entities.NewValidationError(op, msgBirthdayInFuture)
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
	return nil
}

// validateFilm проверяет поля фильма без обращения к справочникам.
func validateFilm(op string, film *entities.Film) error {
	if strings.TrimSpace(film.Name) == "" {
		return entities.NewValidationError(op, msgEmptyFilmName)
	}
	if utf8.RuneCountInString(film.Description) >= entities.MaxDescriptionLength {
		return entities.NewValidationError(op, msgDescriptionTooLong, entities.MaxDescriptionLength)
	}
	if film.ReleaseDate.Before(entities.MinReleaseDate) {
		return entities.NewValidationError(op, msgReleaseTooEarly, entities.MinReleaseDate.Format(dateLayout))
	}
	if film.Duration <= 0 {
		return entities.NewValidationError(op, msgInvalidDuration)
	}
	if film.Mpa.ID == 0 {
		return entities.NewValidationError(op, msgMpaRequired)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
