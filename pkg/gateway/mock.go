package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/routing"
)

// mockText is the completion text served in mock mode.
const mockText = "This is a mock response."

// mockable reports whether a routed path has a canned answer. Paths
// without one fall through to the real upstream even in mock mode.
func mockable(dec *routing.Decision) bool {
	switch dec.UpstreamPath {
	case "/v1/chat/completions", "/v1/completions", "/v1/messages":
		return true
	}
	return false
}

// mockResponse fabricates an upstream response for a routed request
// without contacting any provider. The shape follows the routed
// provider; a stream:true request gets a canned chunk sequence.
func mockResponse(req *types.Request, dec *routing.Decision) *types.UpstreamResponse {
	if req.WantsStream() {
		header := http.Header{}
		header.Set("Content-Type", "text/event-stream")
		return &types.UpstreamResponse{
			Status: http.StatusOK,
			Header: header,
			Stream: newMockStream(mockChunks(req.RequestID, dec)),
		}
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return &types.UpstreamResponse{
		Status: http.StatusOK,
		Header: header,
		Body:   mockBody(req.RequestID, dec),
	}
}

func mockBody(requestID string, dec *routing.Decision) []byte {
	now := time.Now().Unix()
	if dec.Provider == routing.ProviderAnthropic && dec.UpstreamPath == "/v1/messages" {
		return []byte(fmt.Sprintf(`{"id":"msg_mock_%s","type":"message","role":"assistant",`+
			`"model":%q,"content":[{"type":"text","text":%q}],`+
			`"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":8}}`,
			requestID, dec.Model, mockText))
	}
	return []byte(fmt.Sprintf(`{"id":"chatcmpl-mock-%s","object":"chat.completion","created":%d,`+
		`"model":%q,"choices":[{"index":0,"message":{"role":"assistant","content":%q},`+
		`"finish_reason":"stop"}],"usage":{"prompt_tokens":1,"completion_tokens":8,"total_tokens":9}}`,
		requestID, now, dec.Model, mockText))
}

func mockChunks(requestID string, dec *routing.Decision) [][]byte {
	now := time.Now().Unix()
	delta := func(content, finish string) []byte {
		return []byte(fmt.Sprintf("data: {\"id\":\"chatcmpl-mock-%s\",\"object\":\"chat.completion.chunk\","+
			"\"created\":%d,\"model\":%q,\"choices\":[{\"index\":0,\"delta\":%s,\"finish_reason\":%s}]}\n\n",
			requestID, now, dec.Model, content, finish))
	}
	return [][]byte{
		delta(`{"role":"assistant","content":""}`, "null"),
		delta(fmt.Sprintf(`{"content":%q}`, mockText), "null"),
		delta(`{}`, `"stop"`),
		[]byte("data: [DONE]\n\n"),
	}
}

// mockStream replays a fixed chunk sequence as a ChunkReader.
type mockStream struct {
	chunks [][]byte
	idx    int
}

func newMockStream(chunks [][]byte) *mockStream {
	return &mockStream{chunks: chunks}
}

func (m *mockStream) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.idx >= len(m.chunks) {
		return nil, io.EOF
	}
	chunk := m.chunks[m.idx]
	m.idx++
	return chunk, nil
}

func (m *mockStream) Close() error {
	return nil
}
