package storage

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connect(prefix string) *gorm.DB {
	host := os.Getenv(prefix + "DB_HOST")
	port := os.Getenv(prefix + "DB_PORT")
	user := os.Getenv(prefix + "DB_USER")
	password := os.Getenv(prefix + "DB_PASSWORD")
	dbname := os.Getenv(prefix + "DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных:", err)
	}

	fmt.Println("Подключение к базе данных успешно!")
	return db
}

func ConnectDatabase() {
	DB = connect("")
}

// ConnectTestingDatabase подключается к тестовой базе (переменные TEST_DB_*).
func ConnectTestingDatabase() {
	DB = connect("TEST_")
}

var (
	ctx         = context.Background()
	RedisClient *redis.Client
)

// InitRedis создаёт клиент Redis. Кэш необязателен: при недоступном Redis
// обработчики просто работают без кэша.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}
