package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedEntry means the source tree contains an entry that cannot be
// packaged. Symlinks are rejected outright: following them silently varies by
// platform, so the policy here is to fail the mod and name the offending path.
var ErrUnsupportedEntry = errors.New("unsupported entry in mod source")

// DefaultExcludes are first-level directory names never packaged into an
// archive. The build output directory itself is on the list so a mod at the
// repository root can't swallow its own archives.
var DefaultExcludes = []string{"build", ".git", ".github", ".idea", ".vscode"}

// ThumbnailName is the conventional mod thumbnail filename.
const ThumbnailName = "thumbnail.png"

// Builder writes mod archives.
type Builder struct {
	// Excludes lists first path components to skip. Nil means DefaultExcludes.
	Excludes []string
	// DefaultThumbnail, when non-nil, is injected as thumbnail.png into mods
	// that do not ship their own.
	DefaultThumbnail []byte
	// Progress receives per-entry progress lines. Nil means silent.
	Progress io.Writer
}

// Build packages srcDir into a zip at outPath. Every entry is nested under
// topDir, the "<name>_<version>" token. An existing archive at outPath is
// replaced.
func (b *Builder) Build(srcDir, outPath, topDir string) (err error) {
	if err := prepareOutputFile(outPath); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", outPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("finalizing archive: %w", closeErr)
		}
	}()

	excludes := b.Excludes
	if excludes == nil {
		excludes = DefaultExcludes
	}

	hasThumbnail := false
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if excluded(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s is a symlink", ErrUnsupportedEntry, path)
		}

		name := entryName(topDir, rel)
		if d.IsDir() {
			if _, err := zw.Create(name + "/"); err != nil {
				return fmt.Errorf("adding directory %s: %w", name, err)
			}
			b.logf("  dir  %s", name)
			return nil
		}
		if !d.Type().IsRegular() {
			return fmt.Errorf("%w: %s is not a regular file", ErrUnsupportedEntry, path)
		}

		if rel == ThumbnailName {
			hasThumbnail = true
		}
		if err := b.addFile(zw, path, name, d); err != nil {
			return err
		}
		b.logf("  file %s", name)
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	if !hasThumbnail && b.DefaultThumbnail != nil {
		name := topDir + "/" + ThumbnailName
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("adding default thumbnail: %w", err)
		}
		if _, err := w.Write(b.DefaultThumbnail); err != nil {
			return fmt.Errorf("writing default thumbnail: %w", err)
		}
		b.logf("  injected default %s", ThumbnailName)
	}

	return nil
}

// addFile deflates one regular file into the archive, preserving its mode.
func (b *Builder) addFile(zw *zip.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("creating header for %s: %w", path, err)
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	return nil
}

func (b *Builder) logf(format string, args ...any) {
	if b.Progress != nil {
		fmt.Fprintf(b.Progress, format+"\n", args...)
	}
}

// prepareOutputFile creates the parent directory and removes a prior archive.
func prepareOutputFile(outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale archive %s: %w", outPath, err)
	}
	return nil
}

// entryName joins topDir and rel with forward slashes for zip compatibility.
func entryName(topDir, rel string) string {
	return topDir + "/" + filepath.ToSlash(rel)
}

// excluded reports whether rel's first path component is on the exclude list.
func excluded(rel string, excludes []string) bool {
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	for _, e := range excludes {
		if first == e {
			return true
		}
	}
	return false
}
