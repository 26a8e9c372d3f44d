package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("slots").
		Where(squirrel.Eq{"id": 7}).
		Where(squirrel.Eq{"status": "AVAILABLE"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM slots WHERE id = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{7, "AVAILABLE"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("reservations").
		Set("status", "PAID").
		Where(squirrel.Eq{"id": 3}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE reservations SET status = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
}
