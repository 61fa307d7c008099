package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml *.ini graphs/*.yaml scripts/*.tengo
var builtin embed.FS

// Dir is the on-disk directory checked before the built-in copy, so edited
// prefabs win over the shipped ones.
var Dir = "prefabs"

// Load reads a prefab by its name relative to Dir. A leading Dir is ignored.
func Load(name string) ([]byte, error) {
	return read(relPath(name))
}

// LoadScript reads an input script. "drill.tengo", "scripts/drill.tengo" and
// a path under Dir all name the same file.
func LoadScript(name string) ([]byte, error) {
	rel := relPath(name)
	if !strings.HasPrefix(rel, "scripts/") {
		rel = path.Join("scripts", rel)
	}
	return read(rel)
}

func read(rel string) ([]byte, error) {
	if data, err := os.ReadFile(diskPath(rel)); err == nil {
		return data, nil
	}
	return builtin.ReadFile(rel)
}

// relPath turns a user supplied prefab name into a slash separated path
// relative to Dir.
func relPath(name string) string {
	if name == "" {
		return ""
	}
	rel := path.Clean(filepath.ToSlash(name))
	if after, ok := strings.CutPrefix(rel, path.Clean(filepath.ToSlash(Dir))+"/"); ok {
		rel = after
	}
	return rel
}

func diskPath(rel string) string {
	return filepath.Join(Dir, filepath.FromSlash(rel))
}
