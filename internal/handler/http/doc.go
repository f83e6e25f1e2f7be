// Package http implements the HTTP transport layer of the roster server.
//
// It exposes route wiring, request handlers, and middleware for the REST API,
// the photo endpoints and the websocket subscription. Request tracing, access
// logging and response compression are handled here before requests reach
// the service layer.
package http
