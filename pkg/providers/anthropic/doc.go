// Package anthropic implements the Anthropic provider adapter.
//
// Requests arriving under the /anthropic/ prefix in Anthropic's native
// shape pass through with the prefix stripped. Requests in the OpenAI
// chat shape are translated to the native messages endpoint, and the
// buffered response is translated back into an OpenAI chat completion.
// Streamed compat responses are relayed in Anthropic's native event
// framing.
package anthropic
