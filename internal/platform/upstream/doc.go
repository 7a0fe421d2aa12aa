// Package upstream implements the HTTP client for the main server that
// owns application data. It fetches the spending-category payload for a
// request and delivers the calculation outcome back through the result
// callback, presenting the shared secret on both calls.
package upstream
