package relay

import (
	"bufio"
	"bytes"
	"context"
	"io"
)

// doneSentinel terminates an OpenAI-style event stream.
var doneSentinel = []byte("data: [DONE]")

// sseReader implements types.ChunkReader over an upstream event-stream
// body. Each chunk is one complete event block (data lines plus the
// terminating blank line), preserving the provider's native framing.
type sseReader struct {
	body    io.ReadCloser
	br      *bufio.Reader
	cancel  context.CancelFunc
	done    bool
	pending error
}

// newSSEReader wraps an upstream body. cancel releases the underlying
// request context when the stream is closed.
func newSSEReader(body io.ReadCloser, cancel context.CancelFunc) *sseReader {
	return &sseReader{
		body:   body,
		br:     bufio.NewReader(body),
		cancel: cancel,
	}
}

// Next returns the next event block. It returns io.EOF after the
// upstream closes or once the [DONE] sentinel has been delivered.
func (r *sseReader) Next(ctx context.Context) ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}
	if r.pending != nil {
		err := r.pending
		r.pending = nil
		r.done = true
		return nil, err
	}

	select {
	case <-ctx.Done():
		r.done = true
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	for {
		line, err := r.br.ReadBytes('\n')
		buf.Write(line)

		if err != nil {
			if buf.Len() > 0 {
				// Deliver the partial tail first; report the outcome
				// on the following call.
				if err != io.EOF {
					r.pending = err
				} else {
					r.done = true
				}
				return buf.Bytes(), nil
			}
			r.done = true
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}

		// A blank line terminates one event block. A lone blank line
		// (keepalive) is forwarded as its own chunk.
		if len(bytes.TrimRight(line, "\r\n")) == 0 {
			break
		}
	}

	if bytes.Contains(buf.Bytes(), doneSentinel) {
		r.done = true
	}
	return buf.Bytes(), nil
}

// Close releases the upstream connection. Safe to call more than once.
func (r *sseReader) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	return r.body.Close()
}
