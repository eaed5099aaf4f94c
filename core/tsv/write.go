// core/tsv/write.go
package tsv

import (
	"bufio"
	"io"
	"strings"
)

// Write emits the table as tab-separated values, header first.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	if _, err := bw.WriteString(strings.Join(t.Columns, "\t")); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := bw.WriteString(strings.Join(row, "\t")); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePath writes the table to a .tsv or .tsv.gz file ("-" for stdout).
func (t *Table) WritePath(path string) error {
	wc, err := openWriter(path)
	if err != nil {
		return err
	}
	if err := t.Write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}
