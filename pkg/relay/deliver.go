package relay

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"firegate-hq/firegate/pkg/gateway/types"
)

// Deliver writes an upstream response to the client. It returns the
// number of stream chunks forwarded (zero in buffered mode) and any
// mid-stream error; by the time a stream error occurs the status is
// already committed, so the caller can only record it.
func Deliver(ctx context.Context, w http.ResponseWriter, resp *types.UpstreamResponse) (int, error) {
	if !resp.IsStream() {
		return 0, deliverBuffered(w, resp)
	}
	return deliverStream(ctx, w, resp)
}

// deliverBuffered writes the full body with a Content-Length recomputed
// from the final bytes. The upstream's own length and encoding headers
// were already stripped by the engine.
func deliverBuffered(w http.ResponseWriter, resp *types.UpstreamResponse) error {
	copyHeader(w.Header(), resp.Header)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.Status)
	_, err := w.Write(resp.Body)
	return err
}

// deliverStream commits the status once, then forwards each chunk as
// it arrives with a flush per chunk.
func deliverStream(ctx context.Context, w http.ResponseWriter, resp *types.UpstreamResponse) (int, error) {
	defer resp.Stream.Close()

	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.Status)

	flusher, _ := w.(http.Flusher)
	chunks := 0
	for {
		chunk, err := resp.Stream.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return chunks, nil
			}
			return chunks, err
		}
		if _, err := w.Write(chunk); err != nil {
			return chunks, err
		}
		chunks++
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func copyHeader(dst, src http.Header) {
	for k, values := range src {
		for _, v := range values {
			dst.Add(k, v)
		}
	}
}
