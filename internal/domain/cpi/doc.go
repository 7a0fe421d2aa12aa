// Package cpi implements the personal consumer price index algorithm:
// a spend-weighted sum of per-category price changes, expressed as a
// percentage. The calculation is pure and holds no state.
package cpi
