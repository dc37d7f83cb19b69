package output

import "regexp"

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences from external data before terminal
// output. DNS answers (TXT records in particular) are attacker-controlled and
// must not be able to manipulate the terminal.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}
