package authorization

import (
	"context"
	"slices"
	"sync"

	"github.com/timebudget/timebudget/pkg/user"
)

type RepositoryStub struct {
	mu    sync.Mutex
	users map[int]bool
	links map[Link]bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{users: map[int]bool{}, links: map[Link]bool{}}
}

func (s *RepositoryStub) AddUser(userId int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userId] = true
}

func (s *RepositoryStub) List(_ context.Context, authorizerId int) ([]Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.users[authorizerId] {
		return nil, user.ErrUserNotFound
	}
	links := make([]Link, 0)
	for link := range s.links {
		if link.AuthorizerId == authorizerId {
			links = append(links, link)
		}
	}
	slices.SortFunc(links, func(a, b Link) int { return a.AuthorizedId - b.AuthorizedId })
	return links, nil
}

func (s *RepositoryStub) Upsert(_ context.Context, link Link) (Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.users[link.AuthorizerId] || !s.users[link.AuthorizedId] {
		return Link{}, user.ErrUserNotFound
	}
	s.links[link] = true
	return link, nil
}

func (s *RepositoryStub) Delete(_ context.Context, link Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.links[link] {
		return ErrAuthorizationNotFound
	}
	delete(s.links, link)
	return nil
}
