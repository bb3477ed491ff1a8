// Package api handles incoming HTTP requests, request decoding and response
// formatting. Handlers translate HTTP concerns into service calls and map
// errors to status codes once, at this edge (see HandleAPIError).
package api
