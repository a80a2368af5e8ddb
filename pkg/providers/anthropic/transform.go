package anthropic

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// defaultMaxTokens is used when an OpenAI-shape request omits
// max_tokens; Anthropic requires the field.
const defaultMaxTokens = 4096

// messagesRequest is the native Anthropic request shape.
type messagesRequest struct {
	Model         string        `json:"model"`
	Messages      []chatMessage `json:"messages"`
	System        string        `json:"system,omitempty"`
	MaxTokens     int64         `json:"max_tokens"`
	Temperature   *float64      `json:"temperature,omitempty"`
	TopP          *float64      `json:"top_p,omitempty"`
	Stream        bool          `json:"stream,omitempty"`
	StopSequences []string      `json:"stop_sequences,omitempty"`
	Tools         []nativeTool  `json:"tools,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type nativeTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// messagesResponse is the native Anthropic response shape.
type messagesResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      nativeUsage    `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type nativeUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// chatCompletion is the OpenAI chat completion shape returned to
// compat clients.
type chatCompletion struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// translateRequest converts an OpenAI chat completion body into the
// native messages shape. System-role messages fold into the system
// parameter; multimodal content collapses to its text parts.
func translateRequest(body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}
	parsed := gjson.ParseBytes(body)

	out := messagesRequest{
		Model:     parsed.Get("model").String(),
		MaxTokens: parsed.Get("max_tokens").Int(),
		Stream:    parsed.Get("stream").Bool(),
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = defaultMaxTokens
	}
	if v := parsed.Get("temperature"); v.Exists() {
		f := v.Float()
		out.Temperature = &f
	}
	if v := parsed.Get("top_p"); v.Exists() {
		f := v.Float()
		out.TopP = &f
	}

	var systemParts []string
	parsed.Get("messages").ForEach(func(_, msg gjson.Result) bool {
		role := msg.Get("role").String()
		content := flattenContent(msg.Get("content"))
		if role == "system" {
			systemParts = append(systemParts, content)
			return true
		}
		out.Messages = append(out.Messages, chatMessage{Role: role, Content: content})
		return true
	})
	out.System = strings.Join(systemParts, "\n")

	switch stop := parsed.Get("stop"); {
	case stop.Type == gjson.String:
		out.StopSequences = []string{stop.String()}
	case stop.IsArray():
		for _, s := range stop.Array() {
			out.StopSequences = append(out.StopSequences, s.String())
		}
	}

	parsed.Get("tools").ForEach(func(_, tool gjson.Result) bool {
		fn := tool.Get("function")
		if !fn.Exists() {
			return true
		}
		params := fn.Get("parameters").Raw
		if params == "" {
			params = "{}"
		}
		out.Tools = append(out.Tools, nativeTool{
			Name:        fn.Get("name").String(),
			Description: fn.Get("description").String(),
			InputSchema: json.RawMessage(params),
		})
		return true
	})

	return json.Marshal(out)
}

// flattenContent reduces a message content value to plain text.
func flattenContent(content gjson.Result) string {
	if content.Type == gjson.String {
		return content.String()
	}
	if !content.IsArray() {
		return ""
	}
	var parts []string
	content.ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			parts = append(parts, block.Get("text").String())
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// stopReasonMap translates Anthropic stop reasons to OpenAI finish
// reasons.
var stopReasonMap = map[string]string{
	"end_turn":      "stop",
	"stop_sequence": "stop",
	"max_tokens":    "length",
	"tool_use":      "tool_calls",
}

// translateResponse converts a native messages response into the
// OpenAI chat completion shape.
func translateResponse(body []byte) ([]byte, error) {
	var resp messagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode messages response: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	finish := stopReasonMap[resp.StopReason]
	if finish == "" {
		finish = "stop"
	}

	out := chatCompletion{
		ID:      resp.ID,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   resp.Model,
		Choices: []chatChoice{{
			Message:      chatMessage{Role: "assistant", Content: text.String()},
			FinishReason: finish,
		}},
		Usage: chatUsage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}
	return json.Marshal(out)
}
