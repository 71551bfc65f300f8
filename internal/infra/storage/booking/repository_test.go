package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/psqlbuilder"
	"github.com/agroboost/AgroBoost-RentalService/pkg/ptr"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// dates reach the driver as plain strings through driver.Valuer
func TestApplyFilterExcludesInactiveByDefault(t *testing.T) {
	query, args, err := applyFilter(psqlbuilder.Select("id").From("bookings"), domain.BookingsFilter{
		ServiceID: ptr.Ptr(int64(9)),
		From:      ptr.Ptr(types.Date("2024-03-01")),
		To:        ptr.Ptr(types.Date("2024-03-31")),
	}).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id FROM bookings WHERE service_id = $1 AND start_date <= $2 AND end_date >= $3 AND status NOT IN ($4,$5,$6)",
		query)
	assert.Equal(t, []interface{}{
		int64(9),
		"2024-03-31",
		"2024-03-01",
		"cancelled_by_user",
		"cancelled_by_provider",
		"rejected",
	}, args)
}

func TestApplyFilterExplicitStatus(t *testing.T) {
	status := domain.StatusConfirmed
	query, args, err := applyFilter(psqlbuilder.Select("id").From("bookings"), domain.BookingsFilter{
		UserID: ptr.Ptr(int64(4)),
		Status: &status,
	}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE user_id = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{int64(4), domain.StatusConfirmed}, args)
}

func TestApplyFilterIncludeInactive(t *testing.T) {
	query, _, err := applyFilter(psqlbuilder.Select("id").From("bookings"), domain.BookingsFilter{
		ProviderID:      ptr.Ptr(int64(2)),
		IncludeInactive: true,
	}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE provider_id = $1", query)
}
