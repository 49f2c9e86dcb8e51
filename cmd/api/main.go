package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/divvyhq/divvy/docs"
	"github.com/divvyhq/divvy/internal/activity"
	"github.com/divvyhq/divvy/internal/auth"
	"github.com/divvyhq/divvy/internal/category"
	"github.com/divvyhq/divvy/internal/config"
	"github.com/divvyhq/divvy/internal/database"
	"github.com/divvyhq/divvy/internal/expense"
	"github.com/divvyhq/divvy/internal/group"
	"github.com/divvyhq/divvy/internal/settlement"
	"github.com/divvyhq/divvy/internal/user"
	"github.com/divvyhq/divvy/pkg/logging"
	mw "github.com/divvyhq/divvy/pkg/middleware"
	"github.com/divvyhq/divvy/pkg/response"
)

// @title           Divvy API
// @version         1.0
// @description     Expense splitting backend: groups, expenses, splits and settlements.
// @BasePath        /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Activity feature (records what the others do)
	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService, jwtManager)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, activityService)
	groupHandler := group.NewHandler(groupService)

	// Category feature
	categoryRepo := category.NewRepository(db)
	categoryService := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categoryService)

	// Settlement feature (reads; writes happen in the expense transaction)
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, groupService)
	settlementHandler := settlement.NewHandler(settlementService)

	// Expense feature (validator + transactional writer)
	expenseValidator := expense.NewValidator(userRepo, groupRepo, categoryRepo)
	expenseRepo := expense.NewRepository(db, settlementRepo)
	expenseService := expense.NewService(expenseRepo, expenseValidator, activityService)
	expenseHandler := expense.NewHandler(expenseService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(jwtManager))
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/categories", categoryHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/settlements", settlementHandler.Routes())
			r.Mount("/activities", activityHandler.Routes())
		})
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
