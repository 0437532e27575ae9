// Package watch re-runs the coverage conversion whenever new browser coverage data is written.
package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/avatar-generator/covconv/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DebouncePeriod is how long the input file has to stay quiet before a conversion runs.
	DebouncePeriod = 250 * time.Millisecond
)

var (
	logger = logging.AppLogger().WithFields(log.Fields{"component": "watch"})
)

// EventHandler defines the callback functions for changes of the coverage input file.
type EventHandler interface {
	// Add is called when the input file is created.
	Add(path string)

	// Update is called when the input file is written.
	Update(path string)

	// Delete is called when the input file is removed or renamed.
	Delete(path string)

	// Start starts the event handler passing it a done channel. It returns once done is closed.
	Start(done chan struct{})
}

type defaultEventHandler struct {
	watcher  *fsnotify.Watcher
	input    string
	convert  func() error
	debounce time.Duration
	pending  <-chan time.Time
}

// NewEventHandler creates an event handler which calls convert whenever the file at input is created
// or written. The directory of input is created if it does not exist yet.
func NewEventHandler(input string, convert func() error) (EventHandler, error) {
	input, err := filepath.Abs(input)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to resolve %s", input)
	}

	dir := filepath.Dir(input)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create directory %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "unable to create file watcher")
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "unable to watch %s", dir)
	}
	logger.Infof("watching %s", input)

	return &defaultEventHandler{
		watcher:  watcher,
		input:    input,
		convert:  convert,
		debounce: DebouncePeriod,
	}, nil
}

func (h *defaultEventHandler) Add(path string) {
	logger.Debugf("coverage data created at %s", path)
	h.schedule()
}

func (h *defaultEventHandler) Update(path string) {
	logger.Debugf("coverage data updated at %s", path)
	h.schedule()
}

func (h *defaultEventHandler) Delete(path string) {
	logger.Infof("coverage data removed from %s, waiting for new data", path)
	h.pending = nil
}

func (h *defaultEventHandler) Start(done chan struct{}) {
	defer func() {
		if err := h.watcher.Close(); err != nil {
			logger.Errorf("error closing file watcher: %s", err)
		}
	}()

	for {
		select {
		case <-done:
			logger.Info("stopping watch")
			return
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			h.onEvent(event)
		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("file watcher error: %s", err)
		case <-h.pending:
			h.pending = nil
			h.runConversion()
		}
	}
}

func (h *defaultEventHandler) onEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != h.input {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		h.Add(event.Name)
	case event.Has(fsnotify.Write):
		h.Update(event.Name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		h.Delete(event.Name)
	}
}

func (h *defaultEventHandler) schedule() {
	h.pending = time.After(h.debounce)
}

func (h *defaultEventHandler) runConversion() {
	logger.Info("coverage data changed, converting")
	if err := h.convert(); err != nil {
		logger.Errorf("conversion failed: %+v", err)
	}
}
