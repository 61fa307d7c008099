package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileKind classifies a prefab file by extension.
type FileKind int

const (
	FileUnknown FileKind = iota
	FileSpec
	FileScript
	FileBindings
)

func (k FileKind) String() string {
	switch k {
	case FileSpec:
		return "spec"
	case FileScript:
		return "script"
	case FileBindings:
		return "bindings"
	default:
		return "unknown"
	}
}

func KindOf(name string) FileKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FileSpec
	case ".tengo":
		return FileScript
	case ".ini":
		return FileBindings
	default:
		return FileUnknown
	}
}

// Change is one edited prefab file.
type Change struct {
	Path string
	Kind FileKind
}

// reloadQuiet collapses the burst of events editors emit for one save.
const reloadQuiet = 100 * time.Millisecond

// Watcher reports edited prefab files on Events until Close. Both channels
// are closed when the watcher stops.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan Change
	Errors chan error

	quiet coalescer
	done  chan struct{}
	once  sync.Once
}

// Watch watches dir and its graphs and scripts subdirectories.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
	}
	dirs := []string{dir}
	for _, sub := range []string{"graphs", "scripts"} {
		p := filepath.Join(dir, sub)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		}
	}
	for _, d := range dirs {
		if err := fw.Add(d); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", d, err)
		}
	}

	w := &Watcher{
		fs:     fw,
		Events: make(chan Change, 16),
		Errors: make(chan error, 1),
		quiet:  coalescer{window: reloadQuiet},
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

// run owns both output channels.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			c, ok := w.accept(ev, time.Now())
			if !ok {
				continue
			}
			select {
			case w.Events <- c:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) accept(ev fsnotify.Event, now time.Time) (Change, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return Change{}, false
	}
	kind := KindOf(ev.Name)
	if kind == FileUnknown || !w.quiet.admit(ev.Name, now) {
		return Change{}, false
	}
	return Change{Path: ev.Name, Kind: kind}, true
}

type coalescer struct {
	window time.Duration
	last   map[string]time.Time
}

func (c *coalescer) admit(name string, now time.Time) bool {
	if c.last == nil {
		c.last = map[string]time.Time{}
	}
	if t, ok := c.last[name]; ok && now.Sub(t) < c.window {
		return false
	}
	c.last[name] = now
	return true
}

// SameFile reports whether an event path is the on-disk copy of prefab name.
func SameFile(eventPath, name string) bool {
	return filepath.Clean(eventPath) == filepath.Clean(diskPath(relPath(name)))
}
