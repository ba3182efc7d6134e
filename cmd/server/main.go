package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"careconnect-server/internal/api"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/service"
	_ "careconnect-server/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables")
	}

	api.SetupGlobalLogger("careconnect-server")

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	userRepo := repository.NewPostgresUserRepository(db)
	requestRepo := repository.NewPostgresRequestRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)

	authService := service.NewAuthService(userRepo, service.NewBcryptHasher())
	userService := service.NewUserService(db, userRepo)
	requestService := service.NewRequestService(db, requestRepo)
	sessionService := service.NewSessionService(db, sessionRepo, requestRepo)
	ratingService := service.NewRatingService(ratingRepo)

	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(userService)
	requestHandler := api.NewRequestHandler(requestService)
	sessionHandler := api.NewSessionHandler(sessionService)
	ratingHandler := api.NewRatingHandler(ratingService)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "careconnect-server"})
	})

	v1 := app.Group("/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	userRoutes := v1.Group("/users")
	userRoutes.Use(api.AuthMiddleware())
	userRoutes.Get("/me", userHandler.GetMe)
	userRoutes.Patch("/me", userHandler.UpdateMe)
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Get("/by-username/:username", userHandler.GetUserByUsername)
	userRoutes.Get("/:id", userHandler.GetUser)
	userRoutes.Get("/:id/ratings", ratingHandler.ListUserRatings)
	userRoutes.Get("/:id/ratings/stats", ratingHandler.GetUserRatingStats)

	requestRoutes := v1.Group("/requests")
	requestRoutes.Use(api.AuthMiddleware())
	requestRoutes.Post("/", requestHandler.CreateRequest)
	requestRoutes.Get("/", requestHandler.ListRequests)
	requestRoutes.Get("/:id", requestHandler.GetRequest)
	requestRoutes.Patch("/:id", requestHandler.UpdateRequest)
	requestRoutes.Delete("/:id", requestHandler.DeleteRequest)

	sessionRoutes := v1.Group("/sessions")
	sessionRoutes.Use(api.AuthMiddleware())
	sessionRoutes.Post("/", sessionHandler.CreateSession)
	sessionRoutes.Get("/", sessionHandler.ListMySessions)
	sessionRoutes.Get("/:id", sessionHandler.GetSession)
	sessionRoutes.Patch("/:id", sessionHandler.UpdateSession)

	ratingRoutes := v1.Group("/ratings")
	ratingRoutes.Use(api.AuthMiddleware())
	ratingRoutes.Post("/", ratingHandler.CreateRating)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Listening careconnect-server on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func dbURL() string {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

func connectDB() *sqlx.DB {
	db, err := sqlx.Connect("pgx", dbURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", dbURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
