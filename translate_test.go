package predictionguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		code  string
		known bool
		name  string
	}{
		{code: "eng", known: true, name: "English"},
		{code: "spa", known: true, name: "Spanish"},
		{code: "zlm", known: true, name: "Standard Malay"},
		{code: "xyz", known: false, name: "xyz"},
		{code: "", known: false, name: ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			l := ParseLanguage(tt.code)
			assert.Equal(t, tt.code, l.String())
			assert.Equal(t, tt.known, l.IsKnown())
			assert.Equal(t, tt.name, l.Name())
		})
	}
}

func TestLanguage_AllConstantsNamed(t *testing.T) {
	for l, name := range languageNames {
		assert.Len(t, l.String(), 3, name)
		assert.NotEmpty(t, name, l)
	}
}
