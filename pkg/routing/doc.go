// Package routing selects a provider backend for each inbound request.
//
// Routing is a pure function of the request path, body, and static
// configuration: an explicit provider prefix wins, a chat-completion
// shaped path with a Cerebras credential configured redirects to
// Cerebras with a model remap, and everything else under the
// OpenAI-compatible prefix goes to the OpenAI backend. Unmatched
// paths produce a RouteError and never reach an upstream.
package routing
