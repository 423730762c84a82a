package archive

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/zip"
)

// entryModTime is stamped on every archive entry in place of the
// filesystem mtime, so the archive bytes depend only on the staged
// content and its hash is reproducible across builds.
var entryModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteDirZip archives the tree rooted at srcDir into a deflate zip at
// outPath. Entries are ordered by their slash-separated relative path.
func WriteDirZip(srcDir, outPath string) error {
	var files []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, rel := range files {
		hdr := &zip.FileHeader{
			Name:     rel,
			Method:   zip.Deflate,
			Modified: entryModTime,
		}
		hdr.SetMode(0644)

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			zw.Close()
			return err
		}

		f, err := os.Open(filepath.Join(srcDir, filepath.FromSlash(rel)))
		if err != nil {
			zw.Close()
			return err
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return err
	}
	return out.Sync()
}

// WriteEmptyZip writes a structurally valid archive with zero entries
func WriteEmptyZip(outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := zip.NewWriter(out).Close(); err != nil {
		return err
	}
	return out.Sync()
}
