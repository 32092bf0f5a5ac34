package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanInputStripsControlCharacters(t *testing.T) {
	in := "implement\x00 login\x1b with\x7f 2FA"
	out := CleanInput(in)
	assert.Equal(t, "implement login with 2FA", out)
	for _, r := range out {
		assert.GreaterOrEqual(t, r, ' ')
	}
}

func TestCleanInputCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CleanInput("  a \t b\n\n  c  "))
	assert.Equal(t, "a b", CleanInput("a \x00 b"))
}

func TestCleanInputTrims(t *testing.T) {
	assert.Equal(t, "", CleanInput("   \t\n "))
	assert.Equal(t, "x", CleanInput("\nx\t"))
}
