package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_NormalizesInput(t *testing.T) {
	for _, raw := range []string{"  ny ", "ny", "NY", "nY", "\tny\n"} {
		code, err := Validate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, Code("NY"), code, raw)
	}
}

func TestValidate_RuleOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", MsgEmpty},
		{"whitespace only", "   ", MsgEmpty},
		{"single letter", "a", MsgLength},
		{"three letters", "abc", MsgLength},
		{"three digits", "123", MsgLength},
		{"two digits", "12", MsgLetters},
		{"letter and digit", "t1", MsgLetters},
		{"punctuation", "t.", MsgLetters},
		{"inner space", "t x", MsgLength},
		{"non ascii letters", "ñy", MsgLetters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Validate(tt.raw)
			require.Error(t, err)
			assert.Empty(t, code)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.want, vErr.Message)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

// Casing and length follow Go's simple case mapping and rune counts.
func TestValidate_UnicodeEdgeCases(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ß", MsgLength},
		{"ßa", MsgLetters},
		{"😀", MsgLength},
		{"😀😀", MsgLetters},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := Validate(tt.raw)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
