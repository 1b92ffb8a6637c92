package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"calendar_api/internal/events"
	"calendar_api/internal/models"
	"calendar_api/internal/response"
	"calendar_api/internal/storage"
	"calendar_api/internal/timeutil"
	"calendar_api/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Profiles []uint `json:"profiles"`
	Timezone string `json:"timezone" binding:"required"`
	Start    string `json:"start" binding:"required"` // локальное время в поясе timezone, например "2024-01-01T09:00"
	End      string `json:"end" binding:"required"`
}

// UpdateEventRequest — частичное обновление события: указатели отличают
// "поле не передано" от пустого значения.
type UpdateEventRequest struct {
	Profiles  *[]uint `json:"profiles"`
	Start     *string `json:"start"`
	End       *string `json:"end"`
	Timezone  *string `json:"timezone"`
	UpdatedBy *uint   `json:"updated_by"`
}

// UpdateEventResponse сообщает, было ли реальное изменение, и возвращает
// созданную запись журнала (log == null, если изменений не было).
type UpdateEventResponse struct {
	Updated  bool              `json:"updated"`
	Messages []string          `json:"messages"`
	Log      *models.UpdateLog `json:"log"`
}

// CreateEventHandler обрабатывает создание события
// @Summary		Создание события
// @Description	Создаёт событие: start/end интерпретируются как локальное время в поясе timezone и сохраняются в UTC
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			event	body		CreateEventRequest		true	"Данные события"
// @Success		201		{object}	models.Event			"Созданное событие"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_TIMEZONE, INVALID_DATETIME, INVALID_RANGE)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events [post]
func CreateEventHandler(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	start, err := timeutil.CivilToInstant(req.Start, req.Timezone)
	if err != nil {
		timeErrorResponse(c, err)
		return
	}
	end, err := timeutil.CivilToInstant(req.End, req.Timezone)
	if err != nil {
		timeErrorResponse(c, err)
		return
	}

	if end.Before(start) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_RANGE",
			Message: "Время окончания не может быть раньше времени начала",
		})
		return
	}

	var profiles []models.Profile
	if len(req.Profiles) > 0 {
		if err := storage.DB.Where("id IN ?", req.Profiles).Find(&profiles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка загрузки профилей события",
				Details: err.Error(),
			})
			return
		}
	}

	event := models.Event{
		Profiles:   profiles,
		Timezone:   req.Timezone,
		Start:      start,
		End:        end,
		UpdateLogs: []models.UpdateLog{}, // журнал пуст: создание не пишет запись
	}

	if err := storage.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании события",
			Details: err.Error(),
		})
		return
	}

	profileIDs := profileIDsOf(event.Profiles)
	invalidateEventCaches(profileIDs)
	broadcastEventChange("event_created", event.ID, profileIDs, nil)

	c.JSON(http.StatusCreated, event)
}

// GetEventsByProfileHandler обрабатывает запрос событий профиля
// @Summary		События профиля
// @Description	Возвращает события профиля с датами в поясе timezone (иначе в домашнем поясе профиля); event_timezone отбирает события по их сохранённому поясу
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			profileId		path		string	true	"ID профиля"
// @Param			timezone		query		string	false	"Пояс отображения дат"
// @Param			event_timezone	query		string	false	"Фильтр по сохранённому поясу события"
// @Success		200	{array}		events.ProjectedEvent	"События профиля"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_PROFILE_ID, INVALID_TIMEZONE)"
// @Failure		404	{object}	response.ErrorResponse	"Профиль не найден (PROFILE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events/{profileId} [get]
func GetEventsByProfileHandler(c *gin.Context) {
	profileID, err := strconv.Atoi(c.Param("profileId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_PROFILE_ID",
			Message: "Неверный идентификатор профиля",
		})
		return
	}

	overrideTZ := c.Query("timezone")
	tzFilter := c.Query("event_timezone")

	// Проверка кэша
	cacheKey := fmt.Sprintf("events_%d_%s_%s", profileID, overrideTZ, tzFilter)
	cached, cerr := storage.RedisClient.Get(ctx, cacheKey).Result()
	if cerr == nil && cached != "" {
		var projected []events.ProjectedEvent
		if err := json.Unmarshal([]byte(cached), &projected); err == nil {
			c.JSON(http.StatusOK, projected)
			return
		}
	}

	projected, _, err := events.LoadProjection(uint(profileID), overrideTZ, tzFilter)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "PROFILE_NOT_FOUND",
				Message: "Профиль не найден",
			})
		case errors.Is(err, timeutil.ErrInvalidTimezone):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_TIMEZONE",
				Message: "Неизвестный часовой пояс",
			})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка загрузки событий профиля",
				Details: err.Error(),
			})
		}
		return
	}

	// Кэширование результата на 1 час
	if body, merr := json.Marshal(projected); merr == nil {
		storage.RedisClient.Set(ctx, cacheKey, string(body), time.Hour)
	}

	c.JSON(http.StatusOK, projected)
}

// UpdateEventHandler обрабатывает частичное обновление события
// @Summary		Обновление события
// @Description	Сравнивает переданные поля с текущим состоянием; при реальном изменении применяет его и добавляет одну запись в журнал
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			eventId	path		string				true	"ID события"
// @Param			event	body		UpdateEventRequest	true	"Изменяемые поля"
// @Success		200		{object}	UpdateEventResponse		"Результат обновления"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (INVALID_EVENT_ID, VALIDATION_ERROR, INVALID_TIMEZONE, INVALID_DATETIME)"
// @Failure		404		{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events/{eventId} [put]
func UpdateEventHandler(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("eventId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Неверный идентификатор события",
		})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	var event models.Event
	if err := storage.DB.Preload("Profiles").First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие не найдено",
		})
		return
	}

	// Профили из запроса разворачиваем в записи заранее: движку нужны имена
	// для журнала.
	var proposed []models.Profile
	if req.Profiles != nil && len(*req.Profiles) > 0 {
		if err := storage.DB.Where("id IN ?", *req.Profiles).Find(&proposed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка загрузки профилей события",
				Details: err.Error(),
			})
			return
		}
	}

	input := events.UpdateInput{
		Profiles:  req.Profiles,
		Start:     req.Start,
		End:       req.End,
		Timezone:  req.Timezone,
		UpdatedBy: req.UpdatedBy,
	}

	oldProfileIDs := profileIDsOf(event.Profiles)

	diff, err := events.ComputeDiff(&event, input, proposed)
	if err != nil {
		timeErrorResponse(c, err)
		return
	}

	if !diff.Changed() {
		// Ни одно поле реально не изменилось: журнал не пишем, updated_at не трогаем.
		c.JSON(http.StatusOK, UpdateEventResponse{
			Updated:  false,
			Messages: []string{},
			Log:      nil,
		})
		return
	}

	now := time.Now().UTC()
	logEntry, err := events.Apply(&event, diff, req.UpdatedBy, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Ошибка подготовки записи журнала",
			Details: err.Error(),
		})
		return
	}

	// Событие, связи и запись журнала сохраняются вместе: либо всё, либо ничего.
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		if diff.NewProfiles != nil {
			if err := tx.Model(&event).Association("Profiles").Replace(diff.NewProfiles); err != nil {
				return err
			}
		}
		updates := map[string]interface{}{"updated_at": now}
		if diff.NewStart != nil {
			updates["start"] = *diff.NewStart
		}
		if diff.NewEnd != nil {
			updates["end"] = *diff.NewEnd
		}
		if diff.NewTimezone != nil {
			updates["timezone"] = *diff.NewTimezone
		}
		if err := tx.Model(&models.Event{}).Where("id = ?", event.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(logEntry).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при сохранении события",
			Details: err.Error(),
		})
		return
	}

	// Сбрасываем кэш и уведомляем подписчиков старого и нового составов профилей.
	affected := unionIDs(oldProfileIDs, profileIDsOf(event.Profiles))
	invalidateEventCaches(affected)
	broadcastEventChange("event_updated", event.ID, affected, diff.Messages)

	c.JSON(http.StatusOK, UpdateEventResponse{
		Updated:  true,
		Messages: diff.Messages,
		Log:      logEntry,
	})
}

// timeErrorResponse переводит ошибки разбора времени/пояса в ответ клиенту.
func timeErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, timeutil.ErrInvalidTimezone):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TIMEZONE",
			Message: "Неизвестный часовой пояс",
		})
	case errors.Is(err, timeutil.ErrInvalidDateTime):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATETIME",
			Message: "Неверный формат даты/времени",
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Внутренняя ошибка",
			Details: err.Error(),
		})
	}
}

func profileIDsOf(profiles []models.Profile) []uint {
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

func unionIDs(a, b []uint) []uint {
	seen := make(map[uint]bool, len(a)+len(b))
	out := make([]uint, 0, len(a)+len(b))
	for _, id := range append(a, b...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// invalidateEventCaches удаляет закэшированные проекции затронутых профилей.
// Кэш best-effort: ошибки Redis игнорируются.
func invalidateEventCaches(profileIDs []uint) {
	for _, id := range profileIDs {
		keys, err := storage.RedisClient.Keys(ctx, fmt.Sprintf("events_%d_*", id)).Result()
		if err != nil || len(keys) == 0 {
			continue
		}
		storage.RedisClient.Del(ctx, keys...)
	}
}

func broadcastEventChange(eventType string, eventID uint, profileIDs []uint, messages []string) {
	for _, id := range profileIDs {
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType: eventType,
			ProfileID: strconv.FormatUint(uint64(id), 10),
			Data: map[string]interface{}{
				"event_id": eventID,
				"messages": messages,
			},
		})
	}
}
