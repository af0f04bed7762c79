package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{"empty defaults to general", "", CategoryGeneral, false},
		{"general", "general", CategoryGeneral, false},
		{"technology", "technology", CategoryTechnology, false},
		{"sports", "sports", CategorySports, false},
		{"unknown tag", "finance", "", true},
		{"case sensitive", "Business", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
