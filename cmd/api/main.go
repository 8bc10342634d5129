package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studentresult/srms-api/internal/config"
	"github.com/studentresult/srms-api/internal/database"
	"github.com/studentresult/srms-api/internal/handler"
	"github.com/studentresult/srms-api/internal/middleware"
	"github.com/studentresult/srms-api/internal/models"
	"github.com/studentresult/srms-api/internal/repository"
	"github.com/studentresult/srms-api/internal/router"
	"github.com/studentresult/srms-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.Subject{},
		&models.SchoolClass{},
		&models.Marks{},
		&models.RecheckRequest{},
		&models.User{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	classRepo := repository.NewClassRepository(db)
	marksRepo := repository.NewMarksRepository(db)
	recheckRepo := repository.NewRecheckRepository(db)
	userRepo := repository.NewUserRepository(db)

	studentService := service.NewStudentService(studentRepo, validate, logger)
	teacherService := service.NewTeacherService(teacherRepo, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, classRepo, validate, logger)
	classService := service.NewClassService(classRepo, validate, logger)
	marksService := service.NewMarksService(marksRepo, studentRepo, subjectRepo, validate, redisClient, cfg.StatsCacheTTL, cfg.DefaultTerm, cfg.DefaultYear, logger)
	recheckService := service.NewRecheckService(recheckRepo, studentRepo, marksRepo, validate, logger)
	authService := service.NewAuthService(userRepo, studentRepo, teacherRepo, validate, service.AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    handler.NewAuthHandler(authService, logger),
		StudentHandler: handler.NewStudentHandler(studentService, logger),
		TeacherHandler: handler.NewTeacherHandler(teacherService, logger),
		SubjectHandler: handler.NewSubjectHandler(subjectService, logger),
		ClassHandler:   handler.NewClassHandler(classService, logger),
		MarksHandler:   handler.NewMarksHandler(marksService, logger),
		RecheckHandler: handler.NewRecheckHandler(recheckService, logger),
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
