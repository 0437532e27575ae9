package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startHandler(t *testing.T, input string, convert func() error) (done chan struct{}, stopped chan struct{}) {
	handler, err := NewEventHandler(input, convert)
	require.NoError(t, err)
	handler.(*defaultEventHandler).debounce = 50 * time.Millisecond

	done = make(chan struct{})
	stopped = make(chan struct{})
	go func() {
		defer close(stopped)
		handler.Start(done)
	}()
	return done, stopped
}

func stop(t *testing.T, done, stopped chan struct{}) {
	close(done)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("event handler did not stop")
	}
}

func TestConvertsOnWrite(t *testing.T) {
	input := filepath.Join(t.TempDir(), "playwright-coverage", "coverage-data.json")

	var conversions int32
	converted := make(chan struct{}, 10)
	done, stopped := startHandler(t, input, func() error {
		atomic.AddInt32(&conversions, 1)
		converted <- struct{}{}
		return nil
	})
	defer stop(t, done, stopped)

	_, err := os.Stat(filepath.Dir(input))
	require.NoError(t, err, "input directory should have been created")

	require.NoError(t, os.WriteFile(input, []byte("[]"), 0644))

	select {
	case <-converted:
	case <-time.After(5 * time.Second):
		t.Fatal("no conversion after writing the input file")
	}

	// create and write of a single save are debounced into one conversion
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&conversions))
}

func TestIgnoresOtherFiles(t *testing.T) {
	input := filepath.Join(t.TempDir(), "coverage-data.json")

	converted := make(chan struct{}, 10)
	done, stopped := startHandler(t, input, func() error {
		converted <- struct{}{}
		return nil
	})
	defer stop(t, done, stopped)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(input), "other.json"), []byte("[]"), 0644))

	select {
	case <-converted:
		t.Fatal("conversion triggered by unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestKeepsWatchingAfterFailedConversion(t *testing.T) {
	input := filepath.Join(t.TempDir(), "coverage-data.json")

	converted := make(chan struct{}, 10)
	done, stopped := startHandler(t, input, func() error {
		converted <- struct{}{}
		return errors.New("bang")
	})
	defer stop(t, done, stopped)

	for i := 0; i < 2; i++ {
		require.NoError(t, os.WriteFile(input, []byte("[]"), 0644))
		select {
		case <-converted:
		case <-time.After(5 * time.Second):
			t.Fatalf("no conversion after write %d", i+1)
		}
	}
}

func TestDeleteCancelsPendingConversion(t *testing.T) {
	input := filepath.Join(t.TempDir(), "coverage-data.json")

	handler, err := NewEventHandler(input, func() error { return nil })
	require.NoError(t, err)
	h := handler.(*defaultEventHandler)
	defer h.watcher.Close()

	h.Update(input)
	assert.NotNil(t, h.pending)

	h.Delete(input)
	assert.Nil(t, h.pending)
}
