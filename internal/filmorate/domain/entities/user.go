// Package entities описывает сущности каталога фильмов и ошибки домена.
package entities

import (
	"slices"
	"time"
)

// User - пользователь каталога.
type User struct {
	ID       int64
	Email    string
	Login    string
	Name     string
	Birthday time.Time
	// Friends - отсортированные идентификаторы друзей.
	Friends []int64
}

// DisplayName возвращает имя или логин, если имя пустое.
func (u *User) DisplayName() string {
	if u.Name == "" {
		return u.Login
	}
	return u.Name
}

// HasFriend проверяет наличие друга.
func (u *User) HasFriend(id int64) bool {
	_, found := slices.BinarySearch(u.Friends, id)
	return found
}

// Clone возвращает независимую копию.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Friends = slices.Clone(u.Friends)
	return &clone
}
