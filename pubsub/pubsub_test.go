package pubsub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/pubsub"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
		var zero T
		return zero
	}
}

// =============================================================================
// REPLAY-THEN-PUSH CONTRACT
// =============================================================================

func TestSubject_NewSubscriberReceivesCurrentValue(t *testing.T) {
	// GIVEN: A subject that has already published
	// WHEN: A new subscriber arrives
	// THEN: It immediately sees the latest value without a new publish
	s := pubsub.NewSubject[int]()
	s.Publish(42)

	ch, cancel := s.Subscribe()
	defer cancel()

	assert.Equal(t, 42, recv(t, ch))
}

func TestSubject_SubsequentPublishesArePushed(t *testing.T) {
	s := pubsub.NewSubject[string]()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Publish("first")
	assert.Equal(t, "first", recv(t, ch))

	s.Publish("second")
	assert.Equal(t, "second", recv(t, ch))
}

func TestSubject_NoValueYet_NothingReplayed(t *testing.T) {
	s := pubsub.NewSubject[int]()
	ch, cancel := s.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		t.Fatalf("unexpected value %v before any publish", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubject_InitialValueReplayed(t *testing.T) {
	s := pubsub.NewSubjectWithValue([]int{})
	ch, cancel := s.Subscribe()
	defer cancel()

	assert.Empty(t, recv(t, ch))
}

// =============================================================================
// CONFLATION
// =============================================================================

func TestSubject_SlowSubscriberSeesLatestValue(t *testing.T) {
	// GIVEN: A subscriber that never drains
	// WHEN: Many values are published
	// THEN: The buffered value is the newest one, not the oldest
	s := pubsub.NewSubject[int]()
	ch, cancel := s.Subscribe()
	defer cancel()

	for i := 1; i <= 100; i++ {
		s.Publish(i)
	}

	assert.Equal(t, 100, recv(t, ch))
}

// =============================================================================
// CURRENT / CANCEL
// =============================================================================

func TestSubject_Current(t *testing.T) {
	s := pubsub.NewSubject[int]()

	_, ok := s.Current()
	assert.False(t, ok)

	s.Publish(7)
	v, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestSubject_CancelClosesChannelAndStopsDelivery(t *testing.T) {
	s := pubsub.NewSubject[int]()
	ch, cancel := s.Subscribe()

	cancel()
	cancel() // safe to call twice

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic
	s.Publish(1)
}
