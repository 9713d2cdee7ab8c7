package dto

import "filmorate/internal/filmorate/domain/entities"

// UserRequest - тело запросов создания и обновления пользователя.
type UserRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

// UserResponse - пользователь в ответе.
type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday Date    `json:"birthday"`
	Friends  []int64 `json:"friends"`
}

// ToEntity преобразует запрос в сущность.
func (r *UserRequest) ToEntity() *entities.User {
	return &entities.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday.Time,
	}
}

// NewUserResponse строит ответ по сущности.
func NewUserResponse(user *entities.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Login:    user.Login,
		Name:     user.DisplayName(),
		Birthday: NewDate(user.Birthday),
		Friends:  IDs(user.Friends),
	}
}

// NewUserResponses строит список ответов. Пустой список сериализуется как [].
func NewUserResponses(users []*entities.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// IDs заменяет nil пустым срезом.
func IDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
