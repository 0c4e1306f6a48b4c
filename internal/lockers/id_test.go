package lockers

import (
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	kind, n, err := ParseID("2F-S-17")
	require.NoError(t, err)
	assert.Equal(t, models.LockerKind{Location: "2F", Type: "shoe"}, kind)
	assert.Equal(t, 17, n)

	kind, n, err = ParseID(" 1f-c-3 ")
	require.NoError(t, err)
	assert.Equal(t, models.LockerKind{Location: "1F", Type: "clothes"}, kind)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"", "3F-C-01", "1F-X-01", "1F-C-", "1F-C-00", "1FC01"} {
		_, _, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "1F-C-01", FormatID(models.LockerKind{Location: "1F", Type: "clothes"}, 1))
	assert.Equal(t, "2F-S-60", FormatID(models.LockerKind{Location: "2F", Type: "shoe"}, 60))
	assert.Equal(t, "1F-S-120", FormatID(models.LockerKind{Location: "1F", Type: "shoe"}, 120))
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1f-c-1", "1F-C-01"},
		{" 1F-C-01 ", "1F-C-01"},
		{"2f-s-007", "2F-S-07"},
		{"1F-S-120", "1F-S-120"},
		{"", ""},
		{"  ", ""},
		{"x-1", "X-1"},
		{"3f-c-01", "3F-C-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeID(tt.in), tt.in)
	}
}

func TestSeedIDs(t *testing.T) {
	ids := SeedIDs(60)
	require.Len(t, ids, 4)
	clothes := ids[models.LockerKind{Location: "1F", Type: "clothes"}]
	require.Len(t, clothes, 60)
	assert.Equal(t, "1F-C-01", clothes[0])
	assert.Equal(t, "1F-C-60", clothes[59])
}

func TestKindLabels(t *testing.T) {
	for _, kind := range models.AllLockerKinds {
		got, ok := ParseKindLabel(KindLabel(kind))
		assert.True(t, ok)
		assert.Equal(t, kind, got)
	}

	got, ok := ParseKindLabel(" 2F  Shoe ")
	assert.True(t, ok)
	assert.Equal(t, models.LockerKind{Location: "2F", Type: "shoe"}, got)

	_, ok = ParseKindLabel("3F衣柜")
	assert.False(t, ok)
}
