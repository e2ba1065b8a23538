// Package client is the typed JSON layer over the request dispatcher.
//
// # Overview
//
// Client exposes Get, Post, Put and Delete against paths relative to the
// service base endpoint. Bodies are JSON; responses are decoded into the
// caller's value. Authentication, refresh and retries belong to the
// dispatcher the client sends through.
//
// # Error Handling
//
// Failures carry the taxonomy of the common package: *common.RequestError
// for HTTP failures, common.ErrAuthentication when credentials cannot be
// restored, and common.ErrUnexpectedResponse when a body does not decode.
//
// Implementations are safe for concurrent use.
package client
