package events

import (
	"encoding/json"
	"testing"
	"time"

	"calendar_api/internal/models"
	"calendar_api/internal/timeutil"

	"github.com/stretchr/testify/assert"
)

var (
	alice = models.Profile{ID: 1, Name: "Alice", Timezone: "America/New_York"}
	bob   = models.Profile{ID: 2, Name: "Bob", Timezone: "UTC"}
	carol = models.Profile{ID: 3, Name: "Carol", Timezone: "Asia/Tokyo"}
)

// Событие 09:00–10:00 по Нью-Йорку 1 января 2024, хранится в UTC.
func testEvent() *models.Event {
	return &models.Event{
		ID:       1,
		Timezone: "America/New_York",
		Start:    time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
		Profiles: []models.Profile{alice, bob},
	}
}

func strptr(s string) *string { return &s }

func idsptr(ids ...uint) *[]uint { return &ids }

func TestComputeDiffIdenticalPayload(t *testing.T) {
	event := testEvent()
	input := UpdateInput{
		Profiles: idsptr(1, 2),
		Start:    strptr("2024-01-01T09:00"),
		End:      strptr("2024-01-01T10:00"),
		Timezone: strptr("America/New_York"),
	}

	diff, err := ComputeDiff(event, input, []models.Profile{alice, bob})
	assert.NoError(t, err)
	assert.False(t, diff.Changed())
	assert.Empty(t, diff.Messages)
	assert.Empty(t, diff.PreviousValues)
	assert.Empty(t, diff.UpdatedValues)
}

func TestComputeDiffProfileOrderIrrelevant(t *testing.T) {
	event := testEvent()
	input := UpdateInput{Profiles: idsptr(2, 1)}

	// Тот же состав в другом порядке и с дубликатом — не изменение.
	diff, err := ComputeDiff(event, input, []models.Profile{bob, alice, bob})
	assert.NoError(t, err)
	assert.False(t, diff.Changed())
}

func TestComputeDiffProfilesChanged(t *testing.T) {
	event := testEvent()
	input := UpdateInput{Profiles: idsptr(1, 3)}

	diff, err := ComputeDiff(event, input, []models.Profile{alice, carol})
	assert.NoError(t, err)
	assert.True(t, diff.Changed())
	assert.Equal(t, []string{"Profiles changed to: Alice, Carol"}, diff.Messages)
	assert.Equal(t, []string{"Alice", "Bob"}, diff.PreviousValues["profiles"])
	assert.Equal(t, []string{"Alice", "Carol"}, diff.UpdatedValues["profiles"])
	assert.Len(t, diff.PreviousValues, 1)
	assert.Len(t, diff.UpdatedValues, 1)
	assert.Equal(t, []models.Profile{alice, carol}, diff.NewProfiles)
}

func TestComputeDiffClearProfiles(t *testing.T) {
	event := testEvent()
	input := UpdateInput{Profiles: &[]uint{}}

	diff, err := ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.True(t, diff.Changed())
	assert.NotNil(t, diff.NewProfiles)
	assert.Empty(t, diff.NewProfiles)
}

func TestComputeDiffStartJitterIgnored(t *testing.T) {
	event := testEvent()
	// Сдвиг на 30 секунд внутри той же минуты — не изменение.
	input := UpdateInput{Start: strptr("2024-01-01T09:00:30")}

	diff, err := ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.False(t, diff.Changed())
}

func TestComputeDiffStartShiftedByMinute(t *testing.T) {
	event := testEvent()
	// Сдвиг на 61 секунду пересекает границу минуты — изменение.
	input := UpdateInput{Start: strptr("2024-01-01T09:01:01")}

	diff, err := ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.True(t, diff.Changed())
	assert.Equal(t, []string{"Start date/time updated"}, diff.Messages)
	assert.Equal(t, event.Start, diff.PreviousValues["start"])
	assert.Equal(t, time.Date(2024, 1, 1, 14, 1, 1, 0, time.UTC), *diff.NewStart)
	assert.Len(t, diff.PreviousValues, 1)
	assert.Len(t, diff.UpdatedValues, 1)
}

func TestComputeDiffEndBeforeStartAllowed(t *testing.T) {
	event := testEvent()
	// Диапазон при обновлении не перепроверяется: окончание можно
	// передвинуть раньше начала.
	input := UpdateInput{End: strptr("2024-01-01T08:00")}

	diff, err := ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.True(t, diff.Changed())
	assert.Equal(t, []string{"End date/time updated"}, diff.Messages)
	assert.Equal(t, time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), *diff.NewEnd)
	assert.True(t, diff.NewEnd.Before(event.Start))
}

func TestComputeDiffTimezoneOnly(t *testing.T) {
	event := testEvent()
	input := UpdateInput{Timezone: strptr("America/Los_Angeles")}

	diff, err := ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.True(t, diff.Changed())
	assert.Equal(t, []string{"Timezone updated to America/Los_Angeles"}, diff.Messages)
	assert.Equal(t, "America/New_York", diff.PreviousValues["timezone"])
	assert.Equal(t, "America/Los_Angeles", diff.UpdatedValues["timezone"])
	// Сохранённые инстанты не пересчитываются без явного start/end.
	assert.Nil(t, diff.NewStart)
	assert.Nil(t, diff.NewEnd)
}

func TestComputeDiffEffectiveTimezone(t *testing.T) {
	event := testEvent()
	// Новый пояс UTC: входящий start интерпретируется уже в UTC.
	// 14:00 UTC совпадает с хранимым инстантом, изменение только пояса.
	input := UpdateInput{Timezone: strptr("UTC"), Start: strptr("2024-01-01T14:00")}

	diff, err := ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.Nil(t, diff.NewStart)
	assert.Equal(t, []string{"Timezone updated to UTC"}, diff.Messages)

	// А 09:00 в UTC — уже другой инстант, чем 09:00 по Нью-Йорку.
	event = testEvent()
	input = UpdateInput{Timezone: strptr("UTC"), Start: strptr("2024-01-01T09:00")}

	diff, err = ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.NotNil(t, diff.NewStart)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), *diff.NewStart)
	assert.Equal(t, []string{"Start date/time updated", "Timezone updated to UTC"}, diff.Messages)
}

func TestComputeDiffMessageOrder(t *testing.T) {
	event := testEvent()
	input := UpdateInput{
		Profiles: idsptr(3),
		Start:    strptr("2024-01-02T09:00"),
		End:      strptr("2024-01-02T10:00"),
		Timezone: strptr("Asia/Tokyo"),
	}

	diff, err := ComputeDiff(event, input, []models.Profile{carol})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Profiles changed to: Carol",
		"Start date/time updated",
		"End date/time updated",
		"Timezone updated to Asia/Tokyo",
	}, diff.Messages)
}

func TestComputeDiffErrors(t *testing.T) {
	event := testEvent()

	_, err := ComputeDiff(event, UpdateInput{Timezone: strptr("Mars/Olympus")}, nil)
	assert.ErrorIs(t, err, timeutil.ErrInvalidTimezone)

	_, err = ComputeDiff(event, UpdateInput{Start: strptr("не дата")}, nil)
	assert.ErrorIs(t, err, timeutil.ErrInvalidDateTime)
}

func TestApplyBuildsSingleLog(t *testing.T) {
	event := testEvent()
	updatedBy := uint(2)
	input := UpdateInput{
		Start:     strptr("2024-01-01T11:30"),
		Timezone:  strptr("America/New_York"),
		UpdatedBy: &updatedBy,
	}

	diff, err := ComputeDiff(event, input, nil)
	assert.NoError(t, err)
	assert.True(t, diff.Changed())

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	logEntry, err := Apply(event, diff, input.UpdatedBy, now)
	assert.NoError(t, err)
	assert.NotNil(t, logEntry)

	// Мутация применена к событию.
	assert.Equal(t, time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC), event.Start)
	assert.Equal(t, now, event.UpdatedAt)

	assert.Equal(t, event.ID, logEntry.EventID)
	assert.Equal(t, &updatedBy, logEntry.UpdatedByID)
	assert.Equal(t, "Start date/time updated", logEntry.Message)
	assert.Equal(t, now, logEntry.UpdatedAt)

	// В картах значений ровно один ключ — изменившееся поле.
	var prev, upd map[string]interface{}
	assert.NoError(t, json.Unmarshal(logEntry.PreviousValues, &prev))
	assert.NoError(t, json.Unmarshal(logEntry.UpdatedValues, &upd))
	assert.Len(t, prev, 1)
	assert.Len(t, upd, 1)
	assert.Contains(t, prev, "start")
	assert.Contains(t, upd, "start")
}

func TestApplyNoChanges(t *testing.T) {
	event := testEvent()
	diff := &Diff{
		Messages:       []string{},
		PreviousValues: map[string]interface{}{},
		UpdatedValues:  map[string]interface{}{},
	}

	logEntry, err := Apply(event, diff, nil, time.Now())
	assert.NoError(t, err)
	assert.Nil(t, logEntry)
	// Событие не тронуто: updated_at остался нулевым.
	assert.True(t, event.UpdatedAt.IsZero())
}
