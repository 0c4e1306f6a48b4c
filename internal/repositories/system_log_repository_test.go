package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "涂布", EscapeLike("涂布"))
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\x`, EscapeLike(`c:\x`))
}

func TestAuditQueryArgs(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	q := AuditQuery{Prefix: "process added:", From: &from, Keyword: "50%"}

	args := q.args()
	assert.Len(t, args, 4)
	assert.Equal(t, "process added:", args[0])
	assert.Equal(t, &from, args[1])
	assert.Nil(t, args[2])
	assert.Equal(t, `%50\%%`, args[3])

	assert.Equal(t, "", AuditQuery{}.args()[3])
}
