package words_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meteradmin/internal/util/words"
)

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"jalan raya":      "Jalan Raya",
		"jalan  raya":     "Jalan  Raya",
		"JALAN SUDIRMAN":  "Jalan Sudirman",
		" leading":        " Leading",
		"trailing ":       "Trailing ",
		"no.12 blok-a":    "No.12 Blok-a",
		"élan vital":      "Élan Vital",
		"already Upper X": "Already Upper X",
	}
	for in, want := range cases {
		assert.Equal(t, want, words.Capitalize(in), "input %q", in)
	}
}

func TestBlank(t *testing.T) {
	assert.True(t, words.Blank(""))
	assert.True(t, words.Blank(" \t\n"))
	assert.False(t, words.Blank(" x "))
}

func TestIsEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last@sub.example.org"} {
		assert.True(t, words.IsEmail(ok), ok)
	}
	for _, bad := range []string{"", "a@b", "a b@c.de", "@b.co", "a@.", "a@@b.co"} {
		assert.False(t, words.IsEmail(bad), bad)
	}
	assert.Equal(t, "a@b.co", words.NormalizeEmail("  A@B.Co "))
}
