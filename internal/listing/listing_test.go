package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	name   string
	status string
}

var rows = []row{
	{"Calculus Book", "pending"},
	{"PE Shirt", "claimed"},
	{"Lab Gown", "Pending"},
	{"Scientific Calculator", "cancelled"},
}

func fields(r row) []string { return []string{r.name, r.status} }
func status(r row) string   { return r.status }

func TestWhereAllReturnsInputInOrder(t *testing.T) {
	for _, v := range []string{"all", "ALL", "", "  "} {
		assert.Equal(t, rows, Where(rows, v, status), v)
	}
}

func TestWhereIsCaseInsensitive(t *testing.T) {
	got := Where(rows, "pending", status)
	assert.Equal(t, []row{rows[0], rows[2]}, got)
}

func TestSearchPreservesOrderAndIsIdempotent(t *testing.T) {
	once := Search(rows, "calc", fields)
	assert.Equal(t, []row{rows[0], rows[3]}, once)
	assert.Equal(t, once, Search(once, "calc", fields))
}

func TestSearchEmptyTermCopies(t *testing.T) {
	got := Search(rows, "", fields)
	assert.Equal(t, rows, got)
	got[0].name = "changed"
	assert.Equal(t, "Calculus Book", rows[0].name)
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []row{rows[2]}, Filter(rows, "gown", "pending", fields, status))
	assert.Empty(t, Filter(rows, "shirt", "pending", fields, status))
}

func TestMatchesTerm(t *testing.T) {
	assert.True(t, MatchesTerm("SHIRT", "pe shirt"))
	assert.True(t, MatchesTerm("", "anything"))
	assert.False(t, MatchesTerm("pants", "pe shirt", "claimed"))
}
