package relaybox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	t.Run("nil waker falls back to the no-op waker", func(t *testing.T) {
		cx := NewContext(nil)
		assert.Equal(t, NoopWaker(), cx.Waker())
		cx.Waker().Wake()
	})

	t.Run("keeps the given waker", func(t *testing.T) {
		woken := 0
		cx := NewContext(wakerFunc(func() { woken++ }))
		cx.Waker().Wake()
		assert.Equal(t, 1, woken)
	})
}
