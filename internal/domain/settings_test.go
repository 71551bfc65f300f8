package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings(5)

	require.NoError(t, s.Validate())
	assert.Equal(t, int64(5), s.ProviderID)
	assert.Equal(t, 1, s.Capacity)
	assert.Equal(t, "06:00", s.OpenTime.String())
	assert.Equal(t, "20:00", s.CloseTime.String())
	assert.True(t, s.IsProviderWide())
	assert.Equal(t, "", string(s.LatestBookableDate("2024-03-10")))
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings(1)
	s.Capacity = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = DefaultSettings(1)
	s.OpenTime, s.CloseTime = s.CloseTime, s.OpenTime
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = DefaultSettings(1)
	s.AdvanceBookingDays = 400
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
}

func TestLatestBookableDate(t *testing.T) {
	s := DefaultSettings(1)
	s.AdvanceBookingDays = 30

	assert.Equal(t, "2024-04-09", string(s.LatestBookableDate("2024-03-10")))
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: DefaultPageLimit}, Page{}.Normalize())
	assert.Equal(t, Page{Page: 3, Limit: MaxPageLimit}, Page{Page: 3, Limit: 1000}.Normalize())
	assert.Equal(t, 40, Page{Page: 3, Limit: 20}.Offset())
}
