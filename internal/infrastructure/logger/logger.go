package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

const logFlags = log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

func init() {
	Info = log.New(os.Stderr, "INFO: ", logFlags)
	Error = log.New(os.Stderr, "ERROR: ", logFlags)
	Debug = log.New(io.Discard, "DEBUG: ", logFlags)
	Warn = log.New(os.Stderr, "WARN: ", logFlags)
}

// Configure routes all loggers to w. Info and Debug are only written when
// verbose is set; warnings and errors always are.
func Configure(w io.Writer, verbose bool) {
	quiet := io.Discard
	if verbose {
		quiet = w
	}
	Info.SetOutput(quiet)
	Debug.SetOutput(quiet)
	Warn.SetOutput(w)
	Error.SetOutput(w)
}
