// SPDX-License-Identifier: MIT

package meshio

import (
	"bufio"
	"io"
	"path/filepath"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
)

// progressStep is how many parsed items pass between trace progress lines.
const progressStep = 100000

// readFile returns the whole content of name.
func readFile(fsys fsutil.FileSystem, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// writeFile creates name, parents included, and streams fill into it.
// The first error from fill, Flush or Close is returned.
func writeFile(fsys fsutil.FileSystem, name string, fill func(w *bufio.Writer) error) (err error) {
	if dir := filepath.Dir(name); dir != "." {
		if err = fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := fsys.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err = fill(w); err != nil {
		return err
	}

	return w.Flush()
}
