package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetClause(t *testing.T) {
	clause, args := SetClause(map[string]any{"name": "x", "image_url": nil, "position": 3}, 3)

	assert.Equal(t, "image_url = $3, name = $4, position = $5", clause)
	assert.Equal(t, []any{nil, "x", 3}, args)

	clause, args = SetClause(nil, 1)
	assert.Empty(t, clause)
	assert.Empty(t, args)
}
