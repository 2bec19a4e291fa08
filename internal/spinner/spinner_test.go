package spinner

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartDrawsAndClears(t *testing.T) {
	var out syncBuffer
	stop := Start(&out, "Loading dataset")
	time.Sleep(3 * Interval)
	stop()
	stop() // second call is a no-op

	s := out.String()
	assert.Contains(t, s, "Loading dataset")
	assert.True(t, strings.HasSuffix(s, "\r"), "line should be cleared on stop")
}

func TestWhileSkipsNonTerminal(t *testing.T) {
	var out bytes.Buffer
	called := false
	err := While(&out, "Loading dataset", func() error {
		called = true
		return errors.New("boom")
	})
	assert.True(t, called)
	assert.EqualError(t, err, "boom")
	assert.Empty(t, out.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
