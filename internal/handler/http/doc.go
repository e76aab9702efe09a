// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and the request pipeline that
// wraps every route. The pipeline layers run in a fixed order, outermost
// first:
//
//	correlation -> deadline -> fault barrier -> access logger -> dispatcher
//
// The correlation layer assigns the request id, the deadline layer answers
// 504 when the request outlives its budget, the fault barrier turns panics
// into a 500 envelope and the access logger emits exactly one record per
// request with the final status the client observes.
package http
