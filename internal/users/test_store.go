package users

import (
	"context"
	"sync"
)

// TestStore is an in-memory Store, handy for handler and service tests.
type TestStore struct {
	mu      sync.Mutex
	users   []User
	LoadErr error
	SaveErr error
	Saves   int
}

func NewTestStore(users ...User) *TestStore {
	return &TestStore{
		users: cloneAll(users),
	}
}

func (s *TestStore) Load(context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return cloneAll(s.users), nil
}

func (s *TestStore) Save(_ context.Context, users []User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.users = cloneAll(users)
	s.Saves++
	return nil
}

func (s *TestStore) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.users)
}
