// Package task implements the background processing pipeline: a bounded
// task queue consumed by a fixed worker pool (the CPI pipeline runs with
// a single worker), and the calculation task that fetches request data,
// computes the personal index, and reports the outcome upstream.
package task
