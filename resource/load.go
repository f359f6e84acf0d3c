package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/ggez/ggo/task"
)

// LoadChunkSize is how much a streaming load reads per frame. Small
// enough that a single step never dominates a frame, large enough that a
// typical sprite sheet is done in a handful of ticks.
const LoadChunkSize = 64 << 10

// LoadBytesAsync returns a [task.Loading] that reads everything from the
// reader produced by open, one chunk per poll. Poll it once per frame
// (or spawn a computation that drives it) until it reports a result.
//
// open runs on the first poll, so the load does no work at all until the
// frame loop starts driving it.
func LoadBytesAsync[S any](open func() (io.ReadCloser, error)) *task.Loading[[]byte, S] {
	return task.NewLoading(func(y *task.Yield[S]) ([]byte, error) {
		rc, err := open()
		if err != nil {
			return nil, fmt.Errorf("resource: open: %w", err)
		}
		defer rc.Close()

		var buf bytes.Buffer
		chunk := make([]byte, LoadChunkSize)
		for {
			n, err := rc.Read(chunk)
			buf.Write(chunk[:n])
			if errors.Is(err, io.EOF) {
				return buf.Bytes(), nil
			}
			if err != nil {
				return nil, fmt.Errorf("resource: read: %w", err)
			}
			// One chunk per frame.
			y.Yield()
		}
	})
}

// LoadImageAsync streams the bytes like [LoadBytesAsync], yields once
// more before the decode (decoding a large image is its own frame's worth
// of work), then decodes.
func LoadImageAsync[S any](open func() (io.ReadCloser, error)) *task.Loading[image.Image, S] {
	return task.NewLoading(func(y *task.Yield[S]) (image.Image, error) {
		rc, err := open()
		if err != nil {
			return nil, fmt.Errorf("resource: open: %w", err)
		}
		defer rc.Close()

		var buf bytes.Buffer
		chunk := make([]byte, LoadChunkSize)
		for {
			n, err := rc.Read(chunk)
			buf.Write(chunk[:n])
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("resource: read: %w", err)
			}
			y.Yield()
		}
		y.Yield()
		return DecodeImage(&buf)
	})
}
