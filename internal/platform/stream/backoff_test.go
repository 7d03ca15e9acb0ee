package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBackoff_Sequence(t *testing.T) {
	t.Parallel()

	b := NewBackoff()
	want := []time.Duration{
		500 * time.Millisecond,
		800 * time.Millisecond,
		1280 * time.Millisecond,
		2048 * time.Millisecond,
		3276800 * time.Microsecond,
		5000 * time.Millisecond,
		5000 * time.Millisecond,
	}
	for i, w := range want {
		assert.Equal(t, w, b.Next(), "step %d", i)
	}

	b.Reset()
	assert.Equal(t, 500*time.Millisecond, b.Next(), "reset returns to the initial delay")
}
