// Package gateway is the request pipeline of the proxy: normalize the
// inbound call, route it to a provider, run the security filter chain,
// build and execute the upstream call, deliver the response, and hand
// the exchange to the audit recorder. Every error path maps onto the
// OpenAI-compatible error shape.
package gateway
