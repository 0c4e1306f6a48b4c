package services

import (
	"errors"
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kind1FClothes = models.LockerKind{Location: "1F", Type: "clothes"}
	kind2FShoe    = models.LockerKind{Location: "2F", Type: "shoe"}
)

func TestParseLockerRows(t *testing.T) {
	rows := [][]string{
		{"1F衣柜", "", "2F鞋柜"},
		{"1f-c-01", "ignored", "2F-S-01"},
		{"1F-C-02", "", ""},
		{"1F-C-01", "", "2F-S-02"},
	}
	wanted, err := ParseLockerRows(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"1F-C-01", "1F-C-02"}, wanted[kind1FClothes])
	assert.Equal(t, []string{"2F-S-01", "2F-S-02"}, wanted[kind2FShoe])
	assert.Len(t, wanted, 2)
}

func TestParseLockerRows_CanonicalIDs(t *testing.T) {
	rows := [][]string{
		{"1F衣柜"},
		{"1F-C-1"},
		{"1F-C-01"},
		{"1f-c-001"},
	}
	wanted, err := ParseLockerRows(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"1F-C-01"}, wanted[kind1FClothes])
}

func TestParseLockerRows_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{"empty", nil, "no header row"},
		{"unknown header", [][]string{{"3F衣柜"}}, "unknown column"},
		{"no columns", [][]string{{"", ""}}, "no locker columns"},
		{"bad id", [][]string{{"1F衣柜"}, {"X-1"}}, "row 2: invalid locker id"},
		{"wrong column", [][]string{{"1F衣柜"}, {"1F-C-01"}, {"1F-S-01"}}, "row 3: locker 1F-S-01 does not belong in column 1F衣柜"},
		{"no ids", [][]string{{"1F衣柜"}, {""}}, "no locker ids"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLockerRows(tt.rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMergeSelected(t *testing.T) {
	ids := []string{"1F-C-01", "1F-C-03"}

	assert.Equal(t, ids, mergeSelected(ids, ""))
	assert.Equal(t, ids, mergeSelected(ids, "1f-c-03"))
	assert.Equal(t, []string{"1F-C-01", "1F-C-02", "1F-C-03"}, mergeSelected(ids, " 1F-C-02 "))
	assert.Equal(t, []string{"1F-C-01", "1F-C-03"}, ids)
}

func TestValidateKindFilter(t *testing.T) {
	assert.NoError(t, validateKindFilter("", ""))
	assert.NoError(t, validateKindFilter("1F", "shoe"))
	assert.Error(t, validateKindFilter("3F", "shoe"))
}
