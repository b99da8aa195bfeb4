package fakebroker

import (
	"context"
	"sync"
	"time"

	"github.com/dliriotech/tms-auth-service/session"
)

var _ session.Broker = (*FakeBroker)(nil)

type entry struct {
	userID    int
	expiresAt time.Time
}

// FakeBroker is an in-memory session.Broker for tests. NowFunc can be
// overridden to simulate TTL expiry without sleeping.
type FakeBroker struct {
	entries map[string]entry
	lock    sync.Mutex
	NowFunc func() time.Time
}

func NewFakeBroker() *FakeBroker {
	return &FakeBroker{
		entries: make(map[string]entry),
		NowFunc: time.Now,
	}
}

func (b *FakeBroker) Issue(_ context.Context, token string, userID int, ttl time.Duration) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.entries[token] = entry{userID: userID, expiresAt: b.NowFunc().Add(ttl)}
	return nil
}

func (b *FakeBroker) ValidateAndConsume(_ context.Context, token string, userID int) (bool, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	e, ok := b.entries[token]
	if !ok {
		return false, nil
	}
	if b.NowFunc().After(e.expiresAt) {
		delete(b.entries, token)
		return false, nil
	}
	if e.userID != userID {
		return false, nil
	}
	delete(b.entries, token)
	return true, nil
}

func (b *FakeBroker) Delete(_ context.Context, token string) (bool, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	_, ok := b.entries[token]
	delete(b.entries, token)
	return ok, nil
}
