package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWatcher struct {
	batches [][]string
	err     error
}

func (w *fakeWatcher) Run(ctx context.Context, onChange func(paths []string)) error {
	for _, b := range w.batches {
		onChange(b)
	}
	return w.err
}

func TestWatchRebuildsOnChange(t *testing.T) {
	f := newFixture(t, map[string]string{"badge.js": badgeSource}, nil)
	watcher := &fakeWatcher{batches: [][]string{{"/project/badge.js"}}}

	svc := NewWatchService(f.svc, watcher, f.svc.cli)
	require.NoError(t, svc.Run(context.Background()))

	doc := f.read(t, "index.html")
	assert.Contains(t, doc, `data-component="name-badge"`)

	// the rebuild replaced the first build's output instead of stacking
	f.bundler.modules = map[string]string{"greeting.js": greetingSource}
	require.NoError(t, svc.Run(context.Background()))
	doc = f.read(t, "index.html")
	assert.NotContains(t, doc, `data-component="name-badge"`)
	assert.Contains(t, doc, `data-component="greeting-card"`)
	assert.Contains(t, f.out.String(), "Watching for changes...")
}

func TestWatchFailure(t *testing.T) {
	f := newFixture(t, nil, nil)
	svc := NewWatchService(f.svc, &fakeWatcher{err: errors.New("too many open files")}, f.svc.cli)

	err := svc.Run(context.Background())
	assert.ErrorContains(t, err, "watch failed: too many open files")
}
