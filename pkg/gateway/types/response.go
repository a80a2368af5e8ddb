package types

import (
	"context"
	"net/http"
)

// ChunkReader is a lazy, finite, non-restartable sequence of event-stream
// chunks from an upstream. Next returns io.EOF when the upstream closes the
// stream or emits its terminating sentinel. A ChunkReader is consumed at
// most once and is not replayable; Close releases the upstream connection
// and must be called even if Next has returned an error.
type ChunkReader interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// UpstreamResponse is the outcome of a relayed upstream call: either a
// fully buffered body or a stream handle, never both.
//
// Status and Header are always known before the first chunk is read; HTTP
// requires the status line to be committed before any body bytes.
type UpstreamResponse struct {
	// Status is the upstream HTTP status code.
	Status int

	// Header is the upstream response header set, already stripped of
	// hop-by-hop and length-bearing fields by the relay engine.
	Header http.Header

	// Body is the decoded response body in buffered mode. Nil in
	// streaming mode.
	Body []byte

	// Stream is the chunk sequence in streaming mode. Nil in buffered
	// mode.
	Stream ChunkReader
}

// IsStream reports whether the response is delivered in streaming mode.
func (u *UpstreamResponse) IsStream() bool {
	return u.Stream != nil
}
