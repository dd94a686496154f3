package handlers

import (
	"fmt"
	"io"
)

// Version prints build information.
func Version(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "mldeploy %s\n", version)
	fmt.Fprintf(w, "  commit: %s\n", commit)
	fmt.Fprintf(w, "  built:  %s\n", date)
}
