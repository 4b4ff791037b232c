package watcher

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

const defaultDebounce = 200 * time.Millisecond

// FileWatcher reports changes to a single file. It watches the parent
// directory so atomic replace-by-rename saves are seen too.
type FileWatcher struct {
	debounce time.Duration
	log      *slog.Logger
}

type Option func(*FileWatcher)

func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) { w.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *FileWatcher) {
		if l != nil {
			w.log = l
		}
	}
}

func New(opts ...Option) *FileWatcher {
	w := &FileWatcher{
		debounce: defaultDebounce,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.ChangeWatcher = (*FileWatcher)(nil)

// Watch blocks until ctx is done. Bursts of events within the debounce window
// produce one onChange call.
func (w *FileWatcher) Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &domain.OpError{Op: "watcher.watch", Kind: domain.KindExecution, Path: path, Err: err}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return &domain.OpError{Op: "watcher.watch", Kind: domain.KindExecution, Path: abs, Err: err}
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return &domain.OpError{Op: "watcher.add", Kind: domain.KindNotFound, Path: abs, Err: err}
	}
	w.log.Debug("watcher.started", "path", abs)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher.stopped", "path", abs)
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			w.log.Debug("watcher.event", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher.error", "path", abs, "err", err)

		case <-fire:
			timer, fire = nil, nil
			onChange()
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
