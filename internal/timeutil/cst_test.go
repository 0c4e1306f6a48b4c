package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-05", "2024-03-05", false},
		{"2024/3/5", "2024-03-05", false},
		{"2024.03.05", "2024-03-05", false},
		{"20240305", "2024-03-05", false},
		{" 2024-03-05 ", "2024-03-05", false},
		{"2024-03-05 08:30:00", "2024-03-05", false},
		{"", "", true},
		{"05/03/2024", "", true},
		{"2024-13-01", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
