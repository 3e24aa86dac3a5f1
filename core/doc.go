// Package core holds the types every other package shares: Level, the
// pooled Entry handed to destinations, Caller, and Field for structured
// key-value context.
//
// A logger takes an Entry with NewEntry, fans it out to its destinations
// and hands it back with Release. Destinations must not keep an Entry
// after Output returns.
package core
