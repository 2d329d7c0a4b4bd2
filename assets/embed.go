package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ManifestPath is the manifest location relative to the asset root.
const ManifestPath = "asset_data.yaml"

//go:embed asset_data.yaml sprites
var assetsFS embed.FS

// FS returns the asset file system. When dir exists on disk it is used
// instead of the embedded copy so edited files can be hot reloaded.
func FS(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}
	return assetsFS
}

// Embedded returns the assets compiled into the binary.
func Embedded() fs.FS {
	return assetsFS
}

// RelPath converts an on-disk path reported by a watcher into a path
// relative to the asset root.
func RelPath(path string) string {
	return cleanAssetPath(path)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
