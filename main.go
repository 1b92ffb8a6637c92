package main

import (
	"fmt"
	"log"
	"os"

	_ "calendar_api/docs"
	"calendar_api/internal/handlers"
	"calendar_api/internal/models"
	"calendar_api/internal/storage"
	"calendar_api/internal/tasks"
	"calendar_api/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title Календарь профилей и событий с журналом изменений
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.Profile{}, &models.Event{}, &models.UpdateLog{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	profiles := r.Group("/profiles")
	{
		profiles.POST("", handlers.CreateProfileHandler)
		profiles.GET("", handlers.GetProfilesHandler)
	}

	eventsGroup := r.Group("/events")
	{
		eventsGroup.POST("", handlers.CreateEventHandler)
		eventsGroup.GET("/:profileId", handlers.GetEventsByProfileHandler)
		eventsGroup.GET("/:profileId/ws", ws.CalendarWebSocketHandler)
		eventsGroup.PUT("/:eventId", handlers.UpdateEventHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
