package prefabs

import (
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherAccept(t *testing.T) {
	start := time.Unix(100, 0)
	cases := []struct {
		name     string
		event    fsnotify.Event
		after    time.Duration
		wantKind FileKind
		wantOK   bool
	}{
		{"actor_write", fsnotify.Event{Name: "prefabs/actor.yaml", Op: fsnotify.Write}, 0, FileSpec, true},
		{"burst_collapsed", fsnotify.Event{Name: "prefabs/actor.yaml", Op: fsnotify.Write}, 50 * time.Millisecond, 0, false},
		{"after_quiet", fsnotify.Event{Name: "prefabs/actor.yaml", Op: fsnotify.Write}, 150 * time.Millisecond, FileSpec, true},
		{"other_file_in_burst", fsnotify.Event{Name: "prefabs/bindings.ini", Op: fsnotify.Create}, 160 * time.Millisecond, FileBindings, true},
		{"script_rename", fsnotify.Event{Name: "prefabs/scripts/drill.tengo", Op: fsnotify.Rename}, 170 * time.Millisecond, FileScript, true},
		{"chmod_ignored", fsnotify.Event{Name: "prefabs/level.yaml", Op: fsnotify.Chmod}, 180 * time.Millisecond, 0, false},
		{"unknown_ext", fsnotify.Event{Name: "prefabs/notes.txt", Op: fsnotify.Write}, 190 * time.Millisecond, 0, false},
	}

	w := &Watcher{quiet: coalescer{window: reloadQuiet}}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := w.accept(c.event, start.Add(c.after))
			if ok != c.wantOK {
				t.Fatalf("expected accepted=%v, got %v", c.wantOK, ok)
			}
			if !ok {
				return
			}
			if got.Kind != c.wantKind || got.Path != c.event.Name {
				t.Fatalf("expected %s change for %s, got %+v", c.wantKind, c.event.Name, got)
			}
		})
	}
}

func TestRelPath(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", "actor.yaml", "actor.yaml"},
		{"under_dir", "prefabs/actor.yaml", "actor.yaml"},
		{"nested", "prefabs/graphs/normal.yaml", "graphs/normal.yaml"},
		{"unclean", "prefabs/./graphs//combat.yaml", "graphs/combat.yaml"},
		{"empty", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := relPath(c.in); got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}
