// core/normalise/loader.go
package normalise

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTranscriptMap reads a two-column TSV of transcript → gene pairs.
// Blank lines and '#' comments are skipped; a "transcript" header line is
// tolerated. Duplicate transcripts keep the last mapping.
func LoadTranscriptMap(path string) (map[string]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	m := make(map[string]string)
	sc := bufio.NewScanner(fh)
	ln := 0
	first := true
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		if first && strings.EqualFold(f[0], "transcript") {
			first = false
			continue
		}
		first = false
		m[f[0]] = f[1]
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
