package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueNames(t *testing.T) {
	got := UniqueNames([]string{" 涂布 ", "Coating", "", "coating", "涂布", "分切"})
	assert.Equal(t, []string{"涂布", "Coating", "分切"}, got)
	assert.Nil(t, UniqueNames([]string{" ", ""}))
}

func TestSplitNames(t *testing.T) {
	got := SplitNames("涂布\r\n分切，卷绕,包装\t质检;")
	assert.Equal(t, []string{"涂布", "分切", "卷绕", "包装", "质检"}, got)
}
