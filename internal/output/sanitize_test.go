package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dragonro/DomainAnalyser/internal/output"
)

func TestStripANSI(t *testing.T) {
	cases := map[string]string{
		"plain.example.com":              "plain.example.com",
		"\x1b[31mred.example.com\x1b[0m": "red.example.com",
		"v=spf1 \x1b[2Jinclude:x -all":   "v=spf1 include:x -all",
		"":                               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, output.StripANSI(in))
	}
}
