// Package queue provides Serial, a FIFO work queue drained by a single
// goroutine.
//
// A Logger configured with a queue dispatches every entry through it, and
// FileDestination.Flush schedules its sync on the same queue, so a flush
// requested after a write always observes that write.
package queue
