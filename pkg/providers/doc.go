// Package providers defines the provider adapter contract and the
// pieces shared by every backend: the upstream call specification, the
// typed adapter error, organization-header precedence, and the
// browser-emulation header set.
//
// Each backend lives in its own subpackage (openai, anthropic,
// cerebras) and owns the one piece of provider-specific knowledge its
// upstream requires: model remapping, system-parameter handling, and
// tool-schema differences. Adapters are pure translators; the relay
// engine performs all network I/O.
package providers
