// Package openai implements the OpenAI-compatible provider adapter.
//
// The adapter is largely pass-through: it injects the resolved API key
// and organization header, applies the browser-emulation set, and
// forwards the body unmodified.
package openai
