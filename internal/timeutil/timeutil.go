package timeutil

import (
	"errors"
	"time"
)

// DisplayLayout — формат, в котором даты отдаются клиенту,
// например "Jan 02, 2006 at 03:04 PM".
const DisplayLayout = "Jan 02, 2006 at 03:04 PM"

// Форматы "гражданского" времени, принимаемые от клиента (без указания пояса).
var civilLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

var (
	ErrInvalidTimezone = errors.New("неизвестный часовой пояс")
	ErrInvalidDateTime = errors.New("неверный формат даты/времени")
)

// LoadZone возвращает локацию по имени пояса из базы IANA.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// ToZonedDisplay переводит UTC-инстант в строку для отображения в указанном поясе.
func ToZonedDisplay(t time.Time, zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(DisplayLayout), nil
}

// CivilToInstant интерпретирует строку локального времени как время на часах
// в поясе zone и возвращает соответствующий UTC-инстант.
func CivilToInstant(value, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range civilLayouts {
		if t, perr := time.ParseInLocation(layout, value, loc); perr == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

// NormalizeToMinute отбрасывает секунды и доли секунды. Используется при
// сравнении, чтобы разница меньше минуты не считалась изменением.
func NormalizeToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
