package main

import (
	"fmt"
	"log"
	"os"

	"homehub/internal/ai"
	"homehub/internal/auth"
	"homehub/internal/database"
	"homehub/internal/delivery"
	"homehub/internal/handlers"
	"homehub/internal/services"
	"homehub/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// This is our main function - the entry point of our application
func main() {
	// Load .env in development; in production everything comes from the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	householdSecret := os.Getenv("HOUSEHOLD_SECRET")
	if jwtSecret == "" || householdSecret == "" {
		log.Fatal("JWT_SECRET and HOUSEHOLD_SECRET must be set")
	}

	st := store.New(database.GetDB())
	helper := ai.NewClient()
	sink := delivery.NewSendGridSink()
	reminderPlanner := services.NewReminderPlanner(st)
	planner := services.NewPlannerService(st, helper)

	// Background workers: the dispatcher scans the queue every five minutes,
	// the sweep queues tomorrow's cooking reminders at midnight
	dispatcher := services.NewReminderDispatcher(st, sink)
	dispatcher.Start()
	defer dispatcher.Stop()

	sweep := services.NewCookingSweep(st)
	sweep.Start()
	defer sweep.Stop()

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Household-Secret")
	router.Use(cors.New(corsConfig))

	h := handlers.New(st, helper, reminderPlanner, planner, []byte(jwtSecret), householdSecret)

	// Basic routes
	router.GET("/", h.Home)
	router.GET("/health", h.Health)

	// Auth routes (no auth required)
	router.POST("/auth/token", h.IssueToken)

	// Protected routes (auth required)
	protected := router.Group("")
	protected.Use(auth.Middleware([]byte(jwtSecret)))
	{
		protected.POST("/events", h.CreateEvent)
		protected.GET("/events", h.GetEvents)
		protected.POST("/events/:id/rsvp", h.RSVP)

		protected.POST("/cooking", h.CreateCooking)
		protected.GET("/cooking", h.GetCooking)

		protected.POST("/todos", h.CreateTodo)
		protected.POST("/todos/quick", h.QuickTodo)
		protected.GET("/todos", h.GetTodos)
		protected.PATCH("/todos/:id/status", h.UpdateTodoStatus)
		protected.DELETE("/todos/:id", h.DeleteTodo)

		protected.POST("/plan/day", h.PlanDay)
		protected.GET("/plan", h.GetPlan)
	}

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Server starting on port %s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
