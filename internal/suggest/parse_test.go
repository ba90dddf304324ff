package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered list",
			text: "1. Take a short walk outside\n2. Drink a glass of water\n3. Close unused browser tabs\n4. This one is dropped by the cap",
			want: []string{"Take a short walk outside", "Drink a glass of water", "Close unused browser tabs"},
		},
		{
			name: "bullets and dashes",
			text: "• Block out a deep work session\n- Silence chat notifications",
			want: []string{"Block out a deep work session", "Silence chat notifications"},
		},
		{
			name: "short fragments dropped",
			text: "Tips:\n\n- Stretch\n- Plan tomorrow before you stop",
			want: []string{"Plan tomorrow before you stop"},
		},
		{
			name: "exactly ten characters dropped",
			text: "abcdefghij\nabcdefghijk",
			want: []string{"abcdefghijk"},
		},
		{
			name: "length counts characters",
			text: "Thé glacé!\nCafé à côté",
			want: []string{"Café à côté"},
		},
		{
			name: "nothing usable",
			text: "ok\n\n   \n",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSuggestions(tt.text))
		})
	}
}
