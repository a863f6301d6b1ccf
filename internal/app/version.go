package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set at link time:
//
//	go build -ldflags "-X github.com/agbru/fetchview/internal/app.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that --version works alongside any other flag.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the build information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "fetchview %s\n", Version)
	fmt.Fprintf(w, "  commit:  %s\n", Commit)
	fmt.Fprintf(w, "  built:   %s\n", BuildDate)
	fmt.Fprintf(w, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
