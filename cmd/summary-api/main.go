package main

import (
	"go-posture-summary/internal/api"
	"go-posture-summary/internal/api/handler"
	"go-posture-summary/internal/scheduler"
	"go-posture-summary/internal/store"
	"go-posture-summary/pkg/router"
)

// @title Application Posture Summary API
// @version 1.0
// @description Configuration-driven per-application posture summary service
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Init DB
	if err := store.InitDB("summary.db"); err != nil {
		panic(err)
	}

	// Scheduler for recurring rebuilds
	sched := scheduler.New()
	sched.Start()
	defer sched.Stop()
	handler.UseScheduler(sched)

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r)

	// Start server
	r.Start(":8080")
}
