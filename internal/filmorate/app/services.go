package app

import (
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/ports/repositories"
)

// Services объединяет все сервисы каталога поверх одного хранилища.
type Services struct {
	Users     api.UserService
	Friends   api.FriendService
	Films     api.FilmService
	Likes     api.LikeService
	Reference api.ReferenceService
}

// NewServices собирает сервисы из фабрики репозиториев и кэша рейтинга.
func NewServices(factory repositories.Factory, popular cache.PopularCache) *Services {
	return &Services{
		Users:     NewUserUseCase(factory.UserRepository(), popular),
		Friends:   NewFriendshipUseCase(factory.UserRepository(), factory.FriendRepository()),
		Films:     NewFilmUseCase(factory.FilmRepository(), factory.GenreRepository(), factory.MpaRepository(), popular),
		Likes:     NewLikeUseCase(factory.LikeRepository(), factory.FilmRepository(), popular),
		Reference: NewReferenceUseCase(factory.GenreRepository(), factory.MpaRepository()),
	}
}
