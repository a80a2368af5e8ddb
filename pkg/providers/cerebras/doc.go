// Package cerebras implements the Cerebras provider adapter.
//
// Cerebras serves the OpenAI chat wire shape with three deviations the
// adapter papers over: the model is remapped to the configured default,
// a top-level system field must be folded into the messages list, and
// tool calls require parallel_tool_calls=false with strict=true on
// each function schema.
package cerebras
