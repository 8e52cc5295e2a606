package user

import (
	"context"
	"slices"
	"sync"
)

type RepositoryStub struct {
	mu     sync.Mutex
	nextId int
	users  map[int]User
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{users: map[int]User{}}
}

func (s *RepositoryStub) Create(_ context.Context, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	user.Id = s.nextId
	s.users[user.Id] = user
	return user, nil
}

func (s *RepositoryStub) Get(_ context.Context, id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *RepositoryStub) List(_ context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b User) int { return b.Id - a.Id })
	return users, nil
}

func (s *RepositoryStub) Update(_ context.Context, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.Id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	existing.Username = user.Username
	existing.Email = user.Email
	s.users[user.Id] = existing
	return existing, nil
}

func (s *RepositoryStub) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId = 0
	s.users = map[int]User{}
}
