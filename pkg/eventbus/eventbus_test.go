package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := New(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	got := 0

	listener := func(ctx context.Context, event Event) error {
		mu.Lock()
		got++
		mu.Unlock()
		wg.Done()
		return nil
	}

	bus.Subscribe("equipment.status.changed", listener)
	bus.Subscribe("equipment.status.changed", listener)
	bus.Publish(context.Background(), testEvent{name: "equipment.status.changed"})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("слушатели не были вызваны")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, got)
}

func TestBus_ListenerErrorDoesNotPropagate(t *testing.T) {
	bus := New(zap.NewNop())

	called := make(chan struct{}, 1)
	bus.Subscribe("boom", func(ctx context.Context, event Event) error {
		called <- struct{}{}
		return errors.New("отказ слушателя")
	})

	// Publish не должен ни паниковать, ни возвращать ошибку.
	bus.Publish(context.Background(), testEvent{name: "boom"})

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("слушатель не был вызван")
	}
}

func TestBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(context.Background(), testEvent{name: "nobody.listens"})
}
