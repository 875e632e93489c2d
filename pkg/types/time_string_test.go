package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("9:30am")
	assert.Error(t, err)
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, ts.Minutes())

	midnight, err := NewTimeStringFromString("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, midnight.Minutes())
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, "09:30", FromMinutes(570).String())
	assert.Equal(t, "00:00", FromMinutes(0).String())
	assert.Equal(t, "23:55", FromMinutes(1435).String())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	end, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", end.String())

	// Выход за пределы суток - ошибка, а не перенос на следующий день
	late, err := NewTimeStringFromString("23:45")
	require.NoError(t, err)
	_, err = late.AddMinutes(30)
	assert.Error(t, err)
}

func TestTimeString_Comparisons(t *testing.T) {
	early, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	late, err := NewTimeStringFromString("17:00")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(early))
	assert.False(t, early.IsBefore(early))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// lib/pq отдает TIME как строку с секундами
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, "09:30", ts.String())

	require.NoError(t, ts.Scan([]byte("17:45:00")))
	assert.Equal(t, "17:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
