package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-posture-summary/docs"
	"go-posture-summary/internal/api/handler"
	"go-posture-summary/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/runs", handler.CreateRun)
	r.GET("/api/v1/runs", handler.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/errors", handler.GetRunErrors)
	r.GET("/api/v1/runs/*/logs", handler.GetRunLogs)
	r.GET("/api/v1/runs/*/summary", handler.GetRunSummary)
	r.GET("/api/v1/runs/*/progress", handler.GetRunProgress)
	r.GET("/api/v1/runs/*/files", handler.GetRunFiles)
	// Generic run routes last
	r.GET("/api/v1/runs/*", handler.GetRun)
	r.DELETE("/api/v1/runs/*", handler.DeleteRun)

	r.GET("/api/v1/download/*", handler.DownloadFile)

	r.GET("/swagger/*", func(w http.ResponseWriter, req *http.Request) {
		httpSwagger.WrapHandler(w, req)
	})
}
