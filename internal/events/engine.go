package events

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"calendar_api/internal/models"
	"calendar_api/internal/timeutil"

	"gorm.io/datatypes"
)

// UpdateInput — частичное обновление события. nil-поле означает "не передано",
// поэтому отсутствие поля отличимо от пустого значения.
type UpdateInput struct {
	Profiles  *[]uint
	Start     *string
	End       *string
	Timezone  *string
	UpdatedBy *uint
}

// Diff — результат сравнения входящего обновления с текущим состоянием события.
// Изменения только подготовлены, к событию они применяются отдельно (Apply).
type Diff struct {
	Messages       []string
	PreviousValues map[string]interface{}
	UpdatedValues  map[string]interface{}

	NewProfiles []models.Profile // nil — состав профилей не меняется
	NewStart    *time.Time
	NewEnd      *time.Time
	NewTimezone *string
}

// Changed сообщает, было ли хотя бы одно реальное изменение.
func (d *Diff) Changed() bool {
	return len(d.Messages) > 0
}

// ComputeDiff сравнивает событие с частичным обновлением и собирает пофазный
// дифф в порядке: профили, начало, окончание, часовой пояс.
// proposed — профили, найденные по идентификаторам из input.Profiles.
//
// Входящие start/end интерпретируются в "эффективном" поясе: новом, если он
// передан, иначе в текущем поясе события. Сохранённые инстанты при смене
// пояса не пересчитываются — только если start/end переданы явно.
func ComputeDiff(event *models.Event, input UpdateInput, proposed []models.Profile) (*Diff, error) {
	diff := &Diff{
		Messages:       []string{},
		PreviousValues: map[string]interface{}{},
		UpdatedValues:  map[string]interface{}{},
	}

	effectiveTZ := event.Timezone
	if input.Timezone != nil && *input.Timezone != "" {
		effectiveTZ = *input.Timezone
	}
	if _, err := timeutil.LoadZone(effectiveTZ); err != nil {
		return nil, err
	}

	if input.Profiles != nil {
		if proposed == nil {
			proposed = []models.Profile{}
		}
		if !sameProfileSet(event.Profiles, proposed) {
			newNames := profileNames(proposed)
			diff.PreviousValues["profiles"] = profileNames(event.Profiles)
			diff.UpdatedValues["profiles"] = newNames
			diff.Messages = append(diff.Messages, "Profiles changed to: "+strings.Join(newNames, ", "))
			diff.NewProfiles = proposed
		}
	}

	if input.Start != nil && *input.Start != "" {
		newStart, err := timeutil.CivilToInstant(*input.Start, effectiveTZ)
		if err != nil {
			return nil, err
		}
		if !timeutil.NormalizeToMinute(newStart).Equal(timeutil.NormalizeToMinute(event.Start)) {
			diff.PreviousValues["start"] = event.Start
			diff.UpdatedValues["start"] = newStart
			diff.Messages = append(diff.Messages, "Start date/time updated")
			diff.NewStart = &newStart
		}
	}

	if input.End != nil && *input.End != "" {
		newEnd, err := timeutil.CivilToInstant(*input.End, effectiveTZ)
		if err != nil {
			return nil, err
		}
		// Намеренно без проверки end >= start: при обновлении диапазон
		// не перепроверяется, в отличие от создания.
		if !timeutil.NormalizeToMinute(newEnd).Equal(timeutil.NormalizeToMinute(event.End)) {
			diff.PreviousValues["end"] = event.End
			diff.UpdatedValues["end"] = newEnd
			diff.Messages = append(diff.Messages, "End date/time updated")
			diff.NewEnd = &newEnd
		}
	}

	if input.Timezone != nil && *input.Timezone != "" && *input.Timezone != event.Timezone {
		diff.PreviousValues["timezone"] = event.Timezone
		diff.UpdatedValues["timezone"] = *input.Timezone
		diff.Messages = append(diff.Messages, "Timezone updated to "+*input.Timezone)
		diff.NewTimezone = input.Timezone
	}

	return diff, nil
}

// Apply применяет подготовленные изменения к событию (в памяти) и строит
// запись журнала. Если изменений нет — ничего не делает и возвращает nil.
func Apply(event *models.Event, diff *Diff, updatedBy *uint, now time.Time) (*models.UpdateLog, error) {
	if !diff.Changed() {
		return nil, nil
	}

	if diff.NewProfiles != nil {
		event.Profiles = diff.NewProfiles
	}
	if diff.NewStart != nil {
		event.Start = *diff.NewStart
	}
	if diff.NewEnd != nil {
		event.End = *diff.NewEnd
	}
	if diff.NewTimezone != nil {
		event.Timezone = *diff.NewTimezone
	}
	event.UpdatedAt = now

	prev, err := json.Marshal(diff.PreviousValues)
	if err != nil {
		return nil, err
	}
	upd, err := json.Marshal(diff.UpdatedValues)
	if err != nil {
		return nil, err
	}

	return &models.UpdateLog{
		EventID:        event.ID,
		UpdatedByID:    updatedBy,
		Message:        strings.Join(diff.Messages, ", "),
		PreviousValues: datatypes.JSON(prev),
		UpdatedValues:  datatypes.JSON(upd),
		UpdatedAt:      now,
	}, nil
}

// sameProfileSet сравнивает составы профилей как множества идентификаторов:
// порядок и дубликаты не влияют на результат.
func sameProfileSet(current, proposed []models.Profile) bool {
	a := sortedIDs(current)
	b := sortedIDs(proposed)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedIDs(profiles []models.Profile) []uint {
	seen := make(map[uint]bool, len(profiles))
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func profileNames(profiles []models.Profile) []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}
