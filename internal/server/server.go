package server

import (
	"fmt"
	"net/http"
	"time"

	"todoweb/internal/config"
	"todoweb/internal/database"
	"todoweb/internal/service"
)

type Server struct {
	taskService service.TaskService
	db          database.Service
}

// NewServer builds the http.Server that serves the task pages on the
// configured port.
func NewServer(cfg *config.Config, taskService service.TaskService, dbService database.Service) *http.Server {
	appServer := &Server{
		taskService: taskService,
		db:          dbService,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
