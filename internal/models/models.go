package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile — профиль (человек/календарь), к которому привязываются события.
// После создания профиль в этом сервисе не изменяется и не удаляется.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Timezone  string    `gorm:"not null" json:"timezone"` // Домашний часовой пояс профиля (IANA), используется при отображении
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event — событие календаря. Start/End всегда хранятся в UTC,
// Timezone — пояс, в котором клиент вводил время.
type Event struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Profiles   []Profile   `gorm:"many2many:event_profiles" json:"profiles"`
	Timezone   string      `gorm:"not null" json:"timezone"`
	Start      time.Time   `gorm:"index;not null" json:"start"`
	End        time.Time   `gorm:"not null" json:"end"` // Проверяется против Start только при создании
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	UpdateLogs []UpdateLog `json:"update_logs"` // Журнал изменений, только добавление в конец
}

// UpdateLog — одна запись журнала изменений события: все поля,
// реально изменённые за один вызов обновления.
type UpdateLog struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EventID     uint   `gorm:"index;not null" json:"event_id"`
	UpdatedByID *uint  `json:"updated_by"` // Профиль, выполнивший изменение (может отсутствовать)
	Message     string `json:"message"`
	// Только ключи полей, изменившихся в этом вызове
	PreviousValues datatypes.JSON `json:"previous_values"`
	UpdatedValues  datatypes.JSON `json:"updated_values"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
