package observable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSubscribeSeedsCurrentValue(t *testing.T) {
	state := NewState[int]()
	state.Set(7)

	ch, cancel := state.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the seeded value")
	}
}

func TestStateSubscribeBeforeFirstSet(t *testing.T) {
	state := NewState[int]()

	_, set := state.Get()
	assert.False(t, set)

	ch, cancel := state.Subscribe()
	defer cancel()

	select {
	case <-ch:
		t.Fatal("nothing was published yet")
	default:
	}

	state.Set(1)
	select {
	case v := <-ch:
		assert.Equal(t, 1, v)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the published value")
	}
}

func TestStateConflatesForSlowSubscribers(t *testing.T) {
	state := NewState[int]()
	ch, cancel := state.Subscribe()
	defer cancel()

	// Nobody reads while the value churns; only the newest one matters.
	for i := 1; i <= 10; i++ {
		state.Set(i)
	}

	select {
	case v := <-ch:
		assert.Equal(t, 10, v)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received a value")
	}

	v, set := state.Get()
	require.True(t, set)
	assert.Equal(t, 10, v)
}

func TestStateCancelClosesChannel(t *testing.T) {
	state := NewState[string]()
	ch, cancel := state.Subscribe()

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// Detached subscribers are skipped on later publishes.
	state.Set("after")
	cancel()
}

func TestStreamDropsOldestOnOverflow(t *testing.T) {
	stream := NewStream[int](2)

	stream.Emit(1)
	stream.Emit(2)
	stream.Emit(3)

	assert.Equal(t, 2, <-stream.C())
	assert.Equal(t, 3, <-stream.C())

	select {
	case v := <-stream.C():
		t.Fatalf("unexpected extra event %d", v)
	default:
	}
}

func TestStreamEmitNeverBlocks(t *testing.T) {
	stream := NewStream[int](1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			stream.Emit(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emitter blocked on a full stream")
	}
	assert.Equal(t, 999, <-stream.C())
}
