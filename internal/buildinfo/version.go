package buildinfo

import (
	"fmt"
	"io"
	"runtime"
)

// Set at link time with -ldflags "-X .../buildinfo.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func PrintVersion(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Crate - artifact distribution store")
	_, _ = fmt.Fprintf(w, "  %-11s %s\n", "Version:", Version)
	_, _ = fmt.Fprintf(w, "  %-11s %s\n", "Go Version:", GoVersion)
	_, _ = fmt.Fprintf(w, "  %-11s %s\n", "Git Commit:", Commit)
	_, _ = fmt.Fprintf(w, "  %-11s %s\n", "Built:", Date)
	_, _ = fmt.Fprintf(w, "  %-11s %s/%s\n", "OS/Arch:", runtime.GOOS, runtime.GOARCH)
}
