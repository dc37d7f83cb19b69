// Package wordlist reads subdomain candidate lists: one label per line,
// whitespace trimmed, blank lines and #-comments skipped.
package wordlist

import (
	"bufio"
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"
)

//go:embed common.txt
var embeddedCommon []byte

// Read returns the candidate labels from r.
func Read(r io.Reader) ([]string, error) {
	var candidates []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		candidates = append(candidates, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

// FromFile reads the candidate list at path. A missing file yields no
// candidates, not an error; enumeration degrades to a no-op.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Default returns the embedded candidate list.
func Default() []string {
	candidates, _ := Read(bytes.NewReader(embeddedCommon))
	return candidates
}
