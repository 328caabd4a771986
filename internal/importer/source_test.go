package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare uuid", "57a2a6a4-bcf6-4318-be89-8facb903502d", "57a2a6a4-bcf6-4318-be89-8facb903502d", false},
		{"upper case uuid", "57A2A6A4-BCF6-4318-BE89-8FACB903502D", "57a2a6a4-bcf6-4318-be89-8facb903502d", false},
		{"uuid in url", "https://viewer.example.com/plan/57a2a6a4-bcf6-4318-be89-8facb903502d?v=2", "57a2a6a4-bcf6-4318-be89-8facb903502d", false},
		{"padded", "  doc-42  ", "doc-42", false},
		{"plain token", "doc-42", "doc-42", false},
		{"empty", "   ", "", true},
		{"url without uuid", "https://example.com/plan/42", "", true},
		{"spaces", "two words", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDocumentID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
