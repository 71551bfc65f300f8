package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("services").
		Where(squirrel.Eq{"provider_id": int64(7)}).
		Where(squirrel.Eq{"is_available": true}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM services WHERE provider_id = $1 AND is_available = $2", query)
	assert.Equal(t, []interface{}{int64(7), true}, args)
}

func TestUpdateUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("bookings").
		Set("status", "confirmed").
		Where(squirrel.Eq{"id": int64(3)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
}
