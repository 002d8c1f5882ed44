package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/pkg/logger"
	"github.com/oakwood-commons/assetview/pkg/value"
)

// maxNameAttempts bounds the search for a free file name.
const maxNameAttempts = 1000

// openExportFile creates path, failing with fs.ErrExist when it is taken.
var openExportFile = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeAssetName reduces name to characters safe in a file name.
func sanitizeAssetName(name string) string {
	s := strings.Trim(unsafeNameChars.ReplaceAllString(strings.TrimSpace(name), "_"), "._")
	if s == "" {
		return "asset"
	}
	return s
}

// Filename returns "<asset>_<unixMillis>.<ext>" for an export made at now.
func Filename(asset string, f Format, now time.Time) string {
	return sanitizeAssetName(asset) + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "." + f.Extension()
}

// Exporter writes exports into a directory. It never overwrites: when a name
// is taken the timestamp moves forward a millisecond at a time.
type Exporter struct {
	// Dir is the target directory, created on demand. Empty means the
	// working directory.
	Dir string
	// Clock supplies the timestamp; nil uses time.Now.
	Clock func() time.Time
	// Renderer is used for Markdown and HTML; nil uses the defaults.
	Renderer *render.Renderer
	Log      logr.Logger
}

// Write serializes v and stores it under a fresh name, returning the path.
func (e *Exporter) Write(ctx context.Context, asset string, v value.Value, f Format) (string, error) {
	content, err := Render(v, f, e.Renderer, asset)
	if err != nil {
		return "", err
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	clock := e.Clock
	if clock == nil {
		clock = time.Now
	}
	ts := clock()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path := filepath.Join(dir, Filename(asset, f, ts))
		file, err := openExportFile(path)
		if errors.Is(err, fs.ErrExist) {
			e.Log.V(1).Info("export name taken, advancing timestamp", logger.AssetKey, asset, "path", path)
			ts = ts.Add(time.Millisecond)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating export file: %w", err)
		}
		if err := writeExport(file, content); err != nil {
			_ = os.Remove(path)
			return "", err
		}
		e.Log.V(1).Info("wrote export", logger.AssetKey, asset, logger.FormatKey, string(f), "path", path, "bytes", len(content))
		return path, nil
	}
	return "", fmt.Errorf("no free export file name for %q after %d attempts", asset, maxNameAttempts)
}

// writeExport writes content and closes file. A failed export is removed by
// the caller, so no partial file stays behind.
func writeExport(file io.WriteCloser, content string) error {
	if _, err := io.WriteString(file, content); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing export file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}
