// Package logging holds the process-wide diagnostic logger. User-facing
// output goes to the command's writers; this logger writes to stderr and is
// silent below warn level unless --verbose is set.
package logging

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger shared by all internal packages.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	Level:  clog.WarnLevel,
	Prefix: "kickstart",
})

// SetVerbose switches L to debug level with timestamps.
func SetVerbose(verbose bool) {
	if verbose {
		L.SetLevel(clog.DebugLevel)
		L.SetReportTimestamp(true)
		return
	}
	L.SetLevel(clog.WarnLevel)
	L.SetReportTimestamp(false)
}

// SetOutput redirects L, mostly for tests.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}
