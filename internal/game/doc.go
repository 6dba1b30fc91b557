// Package game is the facade the interaction sources talk to. It owns the
// grid, the Fibonacci cache and the sweep controller, serialises every
// operation behind one mutex, and forwards cell updates and transient
// highlights to a Surface.
//
// Highlight expiry is tagged with the grid generation and the click that
// produced it. An expiry that fires after a resize does nothing, and a cell
// re-highlighted by a later click keeps its highlight until that click's own
// expiry fires.
package game
