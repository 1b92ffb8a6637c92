package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"calendar_api/internal/models"
	"calendar_api/internal/response"
	"calendar_api/internal/storage"

	"github.com/gin-gonic/gin"
)

var ctx = context.Background()

const profilesCacheKey = "profiles_all"

type CreateProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Timezone string `json:"timezone" binding:"required"`
}

// CreateProfileHandler обрабатывает создание профиля
// @Summary		Создание профиля
// @Description	Создаёт профиль с именем и домашним часовым поясом
// @Tags			profiles
// @Accept			json
// @Produce		json
// @Param			profile	body		CreateProfileRequest	true	"Данные профиля"
// @Success		201		{object}	models.Profile			"Созданный профиль"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/profiles [post]
func CreateProfileHandler(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	profile := models.Profile{
		Name:     req.Name,
		Timezone: req.Timezone,
	}

	if err := storage.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании профиля",
			Details: err.Error(),
		})
		return
	}

	// Сбрасываем кэш списка профилей.
	storage.RedisClient.Del(ctx, profilesCacheKey)

	c.JSON(http.StatusCreated, profile)
}

// GetProfilesHandler обрабатывает запрос списка всех профилей
// @Summary		Получение списка профилей
// @Description	Возвращает все профили, кэширует результат в Redis
// @Tags			profiles
// @Accept			json
// @Produce		json
// @Success		200	{array}		models.Profile			"Список профилей"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/profiles [get]
func GetProfilesHandler(c *gin.Context) {
	// Проверка кэша
	cached, err := storage.RedisClient.Get(ctx, profilesCacheKey).Result()
	if err == nil && cached != "" {
		var profiles []models.Profile
		if err := json.Unmarshal([]byte(cached), &profiles); err == nil {
			c.JSON(http.StatusOK, profiles)
			return
		}
	}

	var profiles []models.Profile
	if err := storage.DB.Order("id ASC").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки профилей",
			Details: err.Error(),
		})
		return
	}

	// Кэширование результата на 6 часов
	if body, err := json.Marshal(profiles); err == nil {
		storage.RedisClient.Set(ctx, profilesCacheKey, string(body), time.Hour*6)
	}

	c.JSON(http.StatusOK, profiles)
}
