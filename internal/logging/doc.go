// Package logging defines the Logger contract used across fibgrid and its
// zerolog implementation. Components receive a Logger and never touch
// zerolog directly; StdLogger bridges to APIs that want a *log.Logger.
package logging
