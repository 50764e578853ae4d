// Package preset resolves named or remote configuration presets to local files.
package preset

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

//go:embed presets/*.yaml
var builtin embed.FS

// Names returns the sorted names of the built-in presets.
func Names() []string {
	entries, err := fs.ReadDir(builtin, "presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Builtin returns the YAML content of a built-in preset.
func Builtin(name string) ([]byte, error) {
	data, err := builtin.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return data, nil
}

// Fetch resolves src to a local config file path, using dir for anything it
// has to write:
//   - a built-in preset name is written to dir/<name>.yaml
//   - an existing local file is returned unchanged
//   - anything else is downloaded with go-getter (http, s3, gcs, file, ...)
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if data, err := Builtin(src); err == nil {
		dst := filepath.Join(dir, src+".yaml")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create preset dir: %w", err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return "", fmt.Errorf("write preset %s: %w", src, err)
		}
		return dst, nil
	}

	if st, err := os.Stat(src); err == nil && !st.IsDir() {
		return src, nil
	}

	dst := filepath.Join(dir, remoteName(src))
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch preset %s: %w", src, err)
	}
	return dst, nil
}

// remoteName picks a local file name for a remote source, keeping its
// extension so the config loader can tell YAML from JSON.
func remoteName(src string) string {
	s := src
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	base := path.Base(s)
	switch strings.ToLower(path.Ext(base)) {
	case ".yaml", ".yml", ".json":
		return base
	default:
		return "preset.yaml"
	}
}
