// core/tsv/read.go
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FormatError reports a malformed delimited input with enough context to
// locate the offending line. Line is 1-based; 0 means the whole file.
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Read parses tab-separated data from r. The first line is the header;
// every data row must have the same field count. Blank lines are skipped.
// path is used only for error messages.
func Read(r io.Reader, path string) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20) // VEP lines can be very wide

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, &FormatError{Path: path, Msg: "missing header"}
	}
	header := strings.Split(strings.TrimRight(sc.Text(), "\r"), "\t")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Columns: header}
	ln := 1
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != len(header) {
			return nil, &FormatError{
				Path: path,
				Line: ln,
				Msg:  fmt.Sprintf("expected %d fields, got %d", len(header), len(fields)),
			}
		}
		t.Rows = append(t.Rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadPath reads a .tsv or .tsv.gz file ("-" for stdin).
func ReadPath(path string) (*Table, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Read(rc, path)
}
