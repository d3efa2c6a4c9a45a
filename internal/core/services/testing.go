package services

import (
	"context"
	"sync"
)

type FakeService[T any, S any] struct {
	Inputs      []T
	Result      S
	ReturnError error
	lock        sync.Mutex
}

func NewFakeService[T any, S any](result S, err error) *FakeService[T, S] {
	return &FakeService[T, S]{Result: result, ReturnError: err}
}

func (s *FakeService[T, S]) Run(ctx context.Context, input T) (S, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Inputs = append(s.Inputs, input)
	return s.Result, s.ReturnError
}

func (s *FakeService[T, S]) RunCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Inputs)
}
