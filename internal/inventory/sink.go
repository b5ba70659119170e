package inventory

import (
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Producer pushes a finite sequence of text chunks through emit. It is
// consumed exactly once; an emit error must stop production immediately.
type Producer func(emit func(line string) error) error

// WriteFile opens path for writing (truncating any existing file), streams
// every chunk from produce into it, and closes the file on all exit paths.
// A status line naming the destination is logged whether the run succeeded
// or not, since a failed run still leaves a partial file on disk.
func WriteFile(path string, produce Producer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open inventory file: %w", err)
	}

	defer log.WithField("path", path).Info("repository inventory written")

	return writeTo(file, produce)
}

// writeTo streams produce into w, buffered, and closes w exactly once on
// every exit path. Buffered chunks are flushed even when production fails,
// so a partial inventory reflects everything written before the failure.
// Flush and close errors never mask a producer error.
func writeTo(w io.WriteCloser, produce Producer) (err error) {
	buf := bufio.NewWriter(w)

	defer func() {
		if ferr := buf.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to flush inventory file: %w", ferr)
		}
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close inventory file: %w", cerr)
		}
	}()

	return produce(func(line string) error {
		_, werr := buf.WriteString(line)
		return werr
	})
}
