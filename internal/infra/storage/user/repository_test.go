package user

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/psqlbuilder"
)

func TestApplyFilter(t *testing.T) {
	role := domain.RoleProvider
	query, args, err := applyFilter(
		psqlbuilder.Select("id").From("users"),
		domain.UserFilter{Role: &role, Search: "diop"},
	).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "role = $1")
	assert.Contains(t, query, "email ILIKE $2")
	assert.Equal(t, []interface{}{role, "%diop%", "%diop%", "%diop%"}, args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: uniqueViolation}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}
