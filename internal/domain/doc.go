// Package domain contains the core entities of the personal CPI
// calculation service: the request data fetched from the upstream
// service and the calculation outcome delivered back to it.
package domain
