package memory

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FriendRepository хранит дружбу как зеркальные множества.
type FriendRepository struct {
	store *Store
}

func (r *FriendRepository) AddFriendship(_ context.Context, userID, friendID int64) error {
	const op = "FriendRepository.AddFriendship"

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUsers(op, userID, friendID); err != nil {
		return err
	}
	if _, exists := s.friends[userID][friendID]; exists {
		return entities.NewConflictError(op, "user %d is already a friend of user %d", friendID, userID)
	}

	s.link(userID, friendID)
	s.link(friendID, userID)
	return nil
}

func (s *Store) link(from, to int64) {
	set, ok := s.friends[from]
	if !ok {
		set = make(idSet)
		s.friends[from] = set
	}
	set[to] = struct{}{}
}

func (r *FriendRepository) RemoveFriendship(_ context.Context, userID, friendID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUsers("FriendRepository.RemoveFriendship", userID, friendID); err != nil {
		return err
	}
	delete(s.friends[userID], friendID)
	delete(s.friends[friendID], userID)
	return nil
}

func (r *FriendRepository) FriendIDs(_ context.Context, userID int64) ([]int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireUsers("FriendRepository.FriendIDs", userID); err != nil {
		return nil, err
	}
	return s.friends[userID].sorted(), nil
}

func (r *FriendRepository) CommonFriendIDs(_ context.Context, userID, otherID int64) ([]int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireUsers("FriendRepository.CommonFriendIDs", userID, otherID); err != nil {
		return nil, err
	}
	common := make(idSet)
	other := s.friends[otherID]
	for id := range s.friends[userID] {
		if _, ok := other[id]; ok {
			common[id] = struct{}{}
		}
	}
	return common.sorted(), nil
}

// LikeRepository хранит лайки как множества пользователей по фильмам.
type LikeRepository struct {
	store *Store
}

func (r *LikeRepository) AddLike(_ context.Context, filmID, userID int64) error {
	const op = "LikeRepository.AddLike"

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(op, filmID); err != nil {
		return err
	}
	if err := s.requireUsers(op, userID); err != nil {
		return err
	}
	likers, ok := s.likes[filmID]
	if !ok {
		likers = make(idSet)
		s.likes[filmID] = likers
	}
	if _, exists := likers[userID]; exists {
		return entities.NewConflictError(op, "user %d already liked film %d", userID, filmID)
	}
	likers[userID] = struct{}{}
	return nil
}

func (r *LikeRepository) RemoveLike(_ context.Context, filmID, userID int64) error {
	const op = "LikeRepository.RemoveLike"

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(op, filmID); err != nil {
		return err
	}
	if err := s.requireUsers(op, userID); err != nil {
		return err
	}
	if _, exists := s.likes[filmID][userID]; !exists {
		return entities.NewNotFoundError(op, "user %d has not liked film %d", userID, filmID)
	}
	delete(s.likes[filmID], userID)
	return nil
}

func (r *LikeRepository) LikerIDs(_ context.Context, filmID int64) ([]int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireFilm("LikeRepository.LikerIDs", filmID); err != nil {
		return nil, err
	}
	return s.likes[filmID].sorted(), nil
}
