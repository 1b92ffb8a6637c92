package events

import (
	"calendar_api/internal/models"
	"calendar_api/internal/storage"
	"calendar_api/internal/timeutil"

	"gorm.io/gorm"
)

// ProjectedProfile — профиль в составе события, как его видит клиент.
type ProjectedProfile struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProjectedLog — запись журнала изменений с датой, отформатированной
// в домашнем поясе профиля (независимо от переопределения пояса в запросе).
type ProjectedLog struct {
	UpdatedBy *uint  `json:"updated_by"`
	Message   string `json:"message"`
	UpdatedAt string `json:"updated_at"`
}

// ProjectedEvent — событие с датами, отформатированными для отображения.
type ProjectedEvent struct {
	ID         uint               `json:"id"`
	Profiles   []ProjectedProfile `json:"profiles"`
	Timezone   string             `json:"timezone"`
	Start      string             `json:"start"`
	End        string             `json:"end"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
	UpdateLogs []ProjectedLog     `json:"update_logs"`
}

// Project форматирует событие для профиля. Даты события отображаются в
// overrideTZ, если он задан, иначе в домашнем поясе профиля. Даты записей
// журнала всегда отображаются в домашнем поясе профиля.
func Project(event models.Event, profile models.Profile, overrideTZ string) (ProjectedEvent, error) {
	displayTZ := profile.Timezone
	if overrideTZ != "" {
		displayTZ = overrideTZ
	}

	start, err := timeutil.ToZonedDisplay(event.Start, displayTZ)
	if err != nil {
		return ProjectedEvent{}, err
	}
	end, err := timeutil.ToZonedDisplay(event.End, displayTZ)
	if err != nil {
		return ProjectedEvent{}, err
	}
	createdAt, err := timeutil.ToZonedDisplay(event.CreatedAt, displayTZ)
	if err != nil {
		return ProjectedEvent{}, err
	}
	updatedAt, err := timeutil.ToZonedDisplay(event.UpdatedAt, displayTZ)
	if err != nil {
		return ProjectedEvent{}, err
	}

	profiles := make([]ProjectedProfile, 0, len(event.Profiles))
	for _, p := range event.Profiles {
		profiles = append(profiles, ProjectedProfile{ID: p.ID, Name: p.Name})
	}

	logs := make([]ProjectedLog, 0, len(event.UpdateLogs))
	for _, l := range event.UpdateLogs {
		logAt, lerr := timeutil.ToZonedDisplay(l.UpdatedAt, profile.Timezone)
		if lerr != nil {
			return ProjectedEvent{}, lerr
		}
		logs = append(logs, ProjectedLog{
			UpdatedBy: l.UpdatedByID,
			Message:   l.Message,
			UpdatedAt: logAt,
		})
	}

	return ProjectedEvent{
		ID:         event.ID,
		Profiles:   profiles,
		Timezone:   event.Timezone,
		Start:      start,
		End:        end,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
		UpdateLogs: logs,
	}, nil
}

// LoadProjection загружает профиль и все его события (в порядке создания)
// и строит их проекции. tzFilter дополнительно отбирает события по их
// собственному сохранённому поясу — это отдельный параметр, не влияющий
// на отображение.
func LoadProjection(profileID uint, overrideTZ, tzFilter string) ([]ProjectedEvent, *models.Profile, error) {
	var profile models.Profile
	if err := storage.DB.First(&profile, profileID).Error; err != nil {
		return nil, nil, err
	}

	query := storage.DB.
		Preload("Profiles").
		Preload("UpdateLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("update_logs.id ASC")
		}).
		Joins("JOIN event_profiles ON event_profiles.event_id = events.id").
		Where("event_profiles.profile_id = ?", profileID).
		Order("events.id ASC")
	if tzFilter != "" {
		query = query.Where("events.timezone = ?", tzFilter)
	}

	var eventList []models.Event
	if err := query.Find(&eventList).Error; err != nil {
		return nil, nil, err
	}

	projected := make([]ProjectedEvent, 0, len(eventList))
	for _, ev := range eventList {
		p, err := Project(ev, profile, overrideTZ)
		if err != nil {
			return nil, nil, err
		}
		projected = append(projected, p)
	}
	return projected, &profile, nil
}
