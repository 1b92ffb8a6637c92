package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCivilToInstant(t *testing.T) {
	// Зимой Нью-Йорк живёт по UTC-5.
	got, err := CivilToInstant("2024-01-01T09:00", "America/New_York")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC), got)

	// Формат с секундами тоже принимается.
	got, err = CivilToInstant("2024-01-01T09:00:30", "America/New_York")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 14, 0, 30, 0, time.UTC), got)

	got, err = CivilToInstant("2024-06-15T12:00", "UTC")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), got)
}

func TestCivilToInstantErrors(t *testing.T) {
	_, err := CivilToInstant("2024-01-01T09:00", "Неизвестный/Пояс")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = CivilToInstant("2024-01-01T09:00", "")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = CivilToInstant("не дата", "UTC")
	assert.ErrorIs(t, err, ErrInvalidDateTime)

	_, err = CivilToInstant("01.02.2024 09:00", "UTC")
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestToZonedDisplay(t *testing.T) {
	instant := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)

	got, err := ToZonedDisplay(instant, "America/New_York")
	assert.NoError(t, err)
	assert.Equal(t, "Jan 01, 2024 at 09:00 AM", got)

	got, err = ToZonedDisplay(instant, "Asia/Tokyo")
	assert.NoError(t, err)
	assert.Equal(t, "Jan 01, 2024 at 11:00 PM", got)

	got, err = ToZonedDisplay(instant, "UTC")
	assert.NoError(t, err)
	assert.Equal(t, "Jan 01, 2024 at 02:00 PM", got)

	_, err = ToZonedDisplay(instant, "Mars/Olympus")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestNormalizeToMinute(t *testing.T) {
	instant := time.Date(2024, 1, 1, 10, 0, 30, 500, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), NormalizeToMinute(instant))

	// Разница внутри одной минуты исчезает после нормализации.
	a := time.Date(2024, 1, 1, 10, 0, 1, 0, time.UTC)
	b := time.Date(2024, 1, 1, 10, 0, 59, 0, time.UTC)
	assert.Equal(t, NormalizeToMinute(a), NormalizeToMinute(b))

	// Разница в 61 секунду сохраняется.
	c := time.Date(2024, 1, 1, 10, 1, 2, 0, time.UTC)
	assert.NotEqual(t, NormalizeToMinute(a), NormalizeToMinute(c))
}
