package inventory

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCloser records how often Close is called and can fail it.
type countingCloser struct {
	bytes.Buffer
	closes   int
	closeErr error
}

func (c *countingCloser) Close() error {
	c.closes++
	return c.closeErr
}

func TestWriteTo_ClosesOnceOnSuccess(t *testing.T) {
	sink := &countingCloser{}

	err := writeTo(sink, func(emit func(string) error) error {
		if err := emit("line1\n"); err != nil {
			return err
		}
		return emit("line2\n")
	})

	require.NoError(t, err)
	assert.Equal(t, 1, sink.closes)
	assert.Equal(t, "line1\nline2\n", sink.String())
}

func TestWriteTo_ClosesOnceOnProducerError(t *testing.T) {
	sink := &countingCloser{}
	produceErr := errors.New("fetch failed midway")

	err := writeTo(sink, func(emit func(string) error) error {
		if err := emit("line1\n"); err != nil {
			return err
		}
		return produceErr
	})

	require.ErrorIs(t, err, produceErr)
	assert.Equal(t, 1, sink.closes, "the sink is closed exactly once even when the producer fails")
	assert.Equal(t, "line1\n", sink.String(), "chunks written before the failure are flushed")
}

func TestWriteTo_ProducerErrorWins(t *testing.T) {
	sink := &countingCloser{closeErr: errors.New("close failed")}
	produceErr := errors.New("fetch failed")

	err := writeTo(sink, func(func(string) error) error { return produceErr })

	// The producer error is the root cause; the close error must not mask it.
	require.ErrorIs(t, err, produceErr)
}

func TestWriteTo_SurfacesCloseError(t *testing.T) {
	closeErr := errors.New("close failed")
	sink := &countingCloser{closeErr: closeErr}

	err := writeTo(sink, func(func(string) error) error { return nil })

	require.ErrorIs(t, err, closeErr)
}

func TestWriteFile_WritesAndTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than the new ones"), 0o644))

	err := WriteFile(path, func(emit func(string) error) error {
		return emit("fresh\n")
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(data))
}

func TestWriteFile_PartialFileRemainsOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	produceErr := errors.New("aborted")

	err := WriteFile(path, func(emit func(string) error) error {
		if err := emit("header\n"); err != nil {
			return err
		}
		return produceErr
	})
	require.ErrorIs(t, err, produceErr)

	// The partially written file stays on disk with everything emitted so far.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "header\n", string(data))
}

func TestWriteFile_OpenError(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "inventory.csv"), func(func(string) error) error {
		t.Fatal("producer must not run when the file cannot be opened")
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open inventory file")
}
