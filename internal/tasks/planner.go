package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"calendar_api/internal/events"
	"calendar_api/internal/models"
	"calendar_api/internal/storage"

	"github.com/robfig/cron/v3"
)

var ctx = context.Background()

// WarmUpcomingEventCaches ищет события, начинающиеся в ближайшие 24 часа,
// и прогревает кэш проекций для их профилей (ключ без переопределения пояса).
func WarmUpcomingEventCaches() {
	now := time.Now()
	startWindow := now
	endWindow := now.Add(24 * time.Hour).Add(5 * time.Minute)

	var upcoming []models.Event
	if err := storage.DB.Preload("Profiles").
		Where("start BETWEEN ? AND ?", startWindow, endWindow).
		Find(&upcoming).Error; err != nil {
		log.Println("Ошибка при поиске ближайших событий:", err)
		return
	}

	if len(upcoming) == 0 {
		return
	}

	seen := make(map[uint]bool)
	for _, ev := range upcoming {
		for _, p := range ev.Profiles {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true

			projected, _, err := events.LoadProjection(p.ID, "", "")
			if err != nil {
				log.Printf("Ошибка прогрева кэша профиля %d: %v\n", p.ID, err)
				continue
			}
			body, err := json.Marshal(projected)
			if err != nil {
				continue
			}
			cacheKey := fmt.Sprintf("events_%d__", p.ID)
			storage.RedisClient.Set(ctx, cacheKey, string(body), time.Hour)
		}
	}
	log.Printf("Кэш проекций прогрет для %d профилей\n", len(seen))
}

// RefreshProfileCache перечитывает список профилей и обновляет его кэш.
func RefreshProfileCache() {
	var profiles []models.Profile
	if err := storage.DB.Order("id ASC").Find(&profiles).Error; err != nil {
		log.Println("Ошибка при обновлении кэша профилей:", err)
		return
	}
	body, err := json.Marshal(profiles)
	if err != nil {
		return
	}
	storage.RedisClient.Set(ctx, "profiles_all", string(body), time.Hour*6)
	log.Println("Кэш списка профилей обновлён.")
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Прогрев кэша проекций каждые 5 минут.
	_, err := c.AddFunc("0 */5 * * * *", WarmUpcomingEventCaches)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи WarmUpcomingEventCaches:", err)
	}

	// Обновление кэша профилей каждый день в 03:00.
	_, err = c.AddFunc("0 0 3 * * *", RefreshProfileCache)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи RefreshProfileCache:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
