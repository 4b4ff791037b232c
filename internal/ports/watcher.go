package ports

import "context"

// ChangeWatcher calls onChange whenever path is written, until ctx is done.
type ChangeWatcher interface {
	Watch(ctx context.Context, path string, onChange func()) error
}
