package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/psqlbuilder"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
)

func TestApplyFilter(t *testing.T) {
	t.Run("empty filter adds no condition", func(t *testing.T) {
		query, args, err := applyFilter(psqlbuilder.Select("id").From("services"), domain.ServiceFilter{}).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT id FROM services", query)
		assert.Empty(t, args)
	})

	t.Run("all filters", func(t *testing.T) {
		query, args, err := applyFilter(psqlbuilder.Select("id").From("services"), domain.ServiceFilter{
			ProviderID: ptr.Ptr(int64(4)),
			Category:   "tracteur",
			Search:     "thies",
			Available:  ptr.Ptr(true),
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "provider_id = $1")
		assert.Contains(t, query, "category = $2")
		assert.Contains(t, query, "name ILIKE $3")
		assert.Contains(t, query, "is_available = $6")
		assert.Equal(t, []interface{}{int64(4), "tracteur", "%thies%", "%thies%", "%thies%", true}, args)
	})
}
