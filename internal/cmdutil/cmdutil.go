// internal/cmdutil/cmdutil.go
package cmdutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers (like `head`) closing early is not a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Flush drains outw and returns okCode. Broken pipes map to 0, other
// flush failures to 3.
func Flush(outw *bufio.Writer, stderr io.Writer, okCode int) int {
	err := outw.Flush()
	if IsBrokenPipe(err) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return okCode
}
