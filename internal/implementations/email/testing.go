package email

import (
	"context"
	"sync"
)

type FakeTransport struct {
	Sent        []Message
	ReturnError error
	lock        sync.Mutex
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

func (t *FakeTransport) Send(ctx context.Context, message Message) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.ReturnError != nil {
		return t.ReturnError
	}
	t.Sent = append(t.Sent, message)
	return nil
}

func (t *FakeTransport) SentCount() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.Sent)
}
