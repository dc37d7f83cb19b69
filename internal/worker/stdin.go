package worker

import (
	"bufio"
	"io"
	"strings"
)

// ReadInputs collects analysis targets from r, one domain per line.
// Surrounding whitespace is trimmed; blank and whitespace-only lines are
// dropped.
func ReadInputs(r io.Reader) ([]string, error) {
	var targets []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			targets = append(targets, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}
