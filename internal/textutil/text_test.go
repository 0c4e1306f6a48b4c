package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"张三", "ZS"},
		{"李四光", "LSG"},
		{"Tom 王", "TOMW"},
		{"a1-b2", "A1B2"},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Initials(tt.in), tt.in)
	}
}

func TestNullIfBlank(t *testing.T) {
	assert.Nil(t, NullIfBlank("   "))
	v := NullIfBlank(" 1F-C-01 ")
	if assert.NotNil(t, v) {
		assert.Equal(t, "1F-C-01", *v)
	}
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "x", Deref(v2("x")))
}

func v2(s string) *string { return &s }

func TestCellHelpers(t *testing.T) {
	row := TrimCells([]string{"\ufeff工号", " 张三 "})
	assert.Equal(t, []string{"工号", "张三"}, row)
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "张三", Cell(row, 1))
	assert.True(t, AllBlank("", "  "))
	assert.False(t, AllBlank("", "x"))
}
