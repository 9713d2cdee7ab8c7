package memory

import (
	"context"
	"slices"

	"filmorate/internal/filmorate/domain/entities"
)

// UserRepository хранит пользователей в памяти.
type UserRepository struct {
	store *Store
}

// Create сохраняет пользователя под новым ID. Переданный список друзей игнорируется.
func (r *UserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	stored := user.Clone()
	stored.ID = s.nextUserID
	stored.Friends = nil
	s.users[stored.ID] = stored

	return s.userView(stored.ID), nil
}

func (r *UserRepository) Update(_ context.Context, user *entities.User) (*entities.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUsers("UserRepository.Update", user.ID); err != nil {
		return nil, err
	}
	stored := user.Clone()
	stored.Friends = nil
	s.users[stored.ID] = stored

	return s.userView(stored.ID), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userView(id), nil
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []int64) ([]*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	users := make([]*entities.User, 0, len(sorted))
	for _, id := range sorted {
		if user := s.userView(id); user != nil {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *UserRepository) GetAll(_ context.Context) ([]*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*entities.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		users = append(users, s.userView(id))
	}
	return users, nil
}

// Delete удаляет пользователя, оба направления его дружбы и его лайки.
func (r *UserRepository) Delete(_ context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)

	for friendID := range s.friends[id] {
		delete(s.friends[friendID], id)
	}
	delete(s.friends, id)

	for _, likers := range s.likes {
		delete(likers, id)
	}
	return true, nil
}

// Clear удаляет всех пользователей и все связи с ними.
func (r *UserRepository) Clear(_ context.Context) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.users)
	clear(s.friends)
	for _, likers := range s.likes {
		clear(likers)
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
