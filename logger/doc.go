// Package logger is the public API of the module. A Logger owns a
// registry of destinations, fans every entry out to them, and is the
// Owner its destinations report open and close failures to.
//
//	conf, _ := uploader.NewConfiguration("s3", "/var/log/app/s3")
//	file, _ := destination.NewFileDestination(destination.FileConfig{
//	    Path:     conf.LogPath("app.log"),
//	    Writer:   destination.NewFormatWriter(formatter.NewTextFormatter(formatter.Config{})),
//	    Uploader: conf,
//	})
//	log, _ := logger.NewBuilder().
//	    WithQueue(1000).
//	    WithDestinations(file).
//	    Build()
//	defer log.Close()
//
// Registering a destination attaches it, which opens file destinations;
// RemoveDestination and Close detach and close them. File destinations
// are indexed at registration time, so the cleanup operations
// DeleteAllLogFiles and DeleteSuccessfulLogFiles work on exactly the
// file destinations the logger holds and never inspect other kinds.
//
// With WithQueue every entry is written on a serial queue, and
// FileDestination.Flush schedules its sync behind those writes. Without
// it, logging calls write on the calling goroutine.
//
// Level checks happen before any allocation, so filtered-out messages
// cost a single integer comparison.
package logger
