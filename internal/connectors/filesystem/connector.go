// Package filesystem provides a DocumentSource backed by a local
// directory of knowledge-base documents.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
	"github.com/ankushsurana/shopsage/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.DocumentSource = (*Connector)(nil)

// watchDebounce collapses editor save bursts into one change signal.
const watchDebounce = 500 * time.Millisecond

// Connector lists documents from a local directory. Entries are
// classified by extension; entries the connector cannot read are
// logged and skipped.
type Connector struct {
	dir     string
	watcher *fsnotify.Watcher
}

// New creates a filesystem connector for the given directory.
// The directory does not have to exist; a missing directory yields an
// empty listing so a fresh install starts with an empty index.
func New(dir string) *Connector {
	return &Connector{dir: dir}
}

// Dir returns the watched directory.
func (c *Connector) Dir() string {
	return c.dir
}

// List returns every readable regular file in name order.
// Subdirectories are not descended; the knowledge base is flat.
func (c *Connector) List(_ context.Context) ([]domain.RawDocument, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Document directory not found: %s", c.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("reading document directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]domain.RawDocument, 0, len(names))
	for _, name := range names {
		path := filepath.Join(c.dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable document %s: %v", name, err)
			continue
		}
		docs = append(docs, domain.RawDocument{
			URI:     path,
			Ext:     strings.ToLower(filepath.Ext(name)),
			Content: content,
		})
	}

	logger.Debug("Listed %d documents from %s", len(docs), c.dir)
	return docs, nil
}

// Watch emits a signal whenever the directory changes, debounced so a
// burst of writes triggers one rebuild. The returned channel closes
// when ctx is cancelled.
func (c *Connector) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", c.dir, err)
	}
	c.watcher = watcher

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)

		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug("Document change: %s %s", event.Op, event.Name)
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			case <-fire:
				fire = nil
				select {
				case changes <- struct{}{}:
				default:
					// A rebuild signal is already pending.
				}
			}
		}
	}()

	return changes, nil
}

// Close releases the watcher, if any.
func (c *Connector) Close() error {
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}
