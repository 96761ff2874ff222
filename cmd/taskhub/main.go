package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub/internal/notify"
	"taskhub/internal/server"
	"taskhub/repository/db"
	inmemory "taskhub/repository/inmemory"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
)

func main() {
	log.Println("Запуск сервиса задач...")

	cfg := server.ReadConfig()

	if err := db.Migration(cfg.DBStr, cfg.MigratePath); err != nil {
		log.Println("[WARN] Не удалось применить миграции:", err)
	} else {
		log.Println("[SUCCESS] Миграции применены успешно")
	}

	var userRepo server.Repository
	var taskRepo server.TaskRepository

	dbStorage, err := db.NewStorage(cfg.DBStr)
	if err != nil {
		log.Println("[WARN] Не удалось подключиться к БД, используем память:", err)
		inmem := inmemory.NewStorage()
		userRepo = inmem
		taskRepo = inmem
	} else {
		userRepo = dbStorage
		taskRepo = dbStorage
	}

	var mailer notify.Mailer
	if cfg.SMTPHost != "" && cfg.SMTPUser != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	} else {
		log.Println("[WARN] SMTP не настроен, уведомления отключены")
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Println("[WARN] Redis недоступен, кэш отчётов отключен:", err)
			cache = nil
		}
	}

	api := server.NewTaskAPI(cfg, userRepo, taskRepo, mailer, cache)
	if api == nil {
		log.Fatal("[ERROR] Не удалось инициализировать API")
	}

	scheduler := cron.New()
	if mailer != nil {
		sweeper := notify.NewSweeper(taskRepo, mailer)
		// Ежедневная рассылка напоминаний о сроках.
		if _, err := scheduler.AddFunc("0 8 * * *", func() {
			log.Println("[INFO] Запуск ежедневной рассылки напоминаний...")
			sweeper.Run(context.Background())
		}); err != nil {
			log.Println("[ERROR] Не удалось запланировать рассылку напоминаний:", err)
		}
		scheduler.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Сервис запущен на %s:%d", cfg.Addr, cfg.Port)
		if err := api.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Printf("[INFO] Получен сигнал %v, начинаем graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		<-scheduler.Stop().Done()

		if err := api.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] Ошибка при graceful shutdown: %v", err)
		} else {
			log.Println("[SUCCESS] Graceful shutdown выполнен успешно")
		}

	case err := <-serverErr:
		log.Printf("[ERROR] Ошибка сервера: %v", err)
	}

	log.Println("Сервис завершен")
}
