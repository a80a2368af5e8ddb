// Package relay drives the HTTP exchange with the selected upstream
// and guarantees framing correctness back to the client.
//
// The delivery mode is chosen from the upstream response, never from
// the client's request shape: a text/event-stream content type selects
// streaming, anything else is buffered. Buffered bodies are read in
// full after transparent decompression and the client-facing
// Content-Length is recomputed from the final bytes. Streamed bodies
// are forwarded chunk by chunk in the provider's native framing, with
// a flush per chunk.
//
// The engine never retries: completion requests are not safely
// retryable once any tokens may have been billed.
package relay
