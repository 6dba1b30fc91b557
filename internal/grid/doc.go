// Package grid holds the cell values of the puzzle: a square row-major arena
// with axis-aligned increments, clears and resize.
package grid
