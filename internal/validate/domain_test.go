package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dragonro/DomainAnalyser/internal/validate"
)

func TestIsDomain(t *testing.T) {
	valid := []string{
		"example.com",
		"www.example.com",
		"sub.domain.example.co.uk",
		"xn--bcher-kva.example",
		"a.io",
	}
	for _, d := range valid {
		assert.True(t, validate.IsDomain(d), "expected %q to be valid", d)
	}

	invalid := []string{
		"",
		"example",
		"-example.com",
		"example-.com",
		"has space.com",
		"example.com.",
		"$(injection).com",
		"exa_mple.com",
	}
	for _, d := range invalid {
		assert.False(t, validate.IsDomain(d), "expected %q to be invalid", d)
	}
}
