package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"todoweb/internal/domain"
	"todoweb/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templateFS, "templates/home.html"))

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.homeHandler)
	r.Post("/", s.createHandler)
	r.Post("/update/{id}", s.updateHandler)
	r.Post("/toggle/{id}", s.toggleHandler)
	r.Post("/delete/{id}", s.deleteHandler)

	r.Get("/health", s.healthHandler)

	return r
}

// taskID extracts the numeric id from the URL. A non-numeric or zero id is
// treated like a missing row: the caller responds 404.
func taskID(r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDueDate turns a form value into a date. Empty or unparseable values
// come back nil; the form redirects either way.
func parseDueDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	d, err := time.Parse(service.DueDateLayout, value)
	if err != nil {
		return nil
	}
	return &d
}

func isXHR(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskService.GetAllTasks(r.Context())
	if err != nil {
		log.Printf("Error listing tasks: %v", err)
		http.Error(w, "Failed to load tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTemplate.Execute(w, map[string]any{"Tasks": tasks}); err != nil {
		log.Printf("Error rendering home page: %v", err)
	}
}

func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	req := service.CreateTaskRequest{
		Title:   r.PostFormValue("title"),
		DueDate: parseDueDate(r.PostFormValue("due_date")),
	}

	// A missing title is deliberately a silent no-op: nothing is created
	// and the form redirects back to the list either way.
	_, err := s.taskService.CreateTask(r.Context(), req)
	if err != nil && !errors.Is(err, domain.ErrEmptyTitle) {
		log.Printf("Error creating task: %v", err)
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) updateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	dueRaw := r.PostFormValue("due_date")
	// Checkbox semantics: the browser omits the field entirely when the
	// box is unchecked.
	completed := r.PostForm.Has("completed")

	req := service.UpdateTaskRequest{
		Title:        &title,
		DueDate:      parseDueDate(dueRaw),
		ClearDueDate: dueRaw == "",
		Completed:    &completed,
	}

	if _, err := s.taskService.UpdateTask(r.Context(), id, req); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("Error updating task %d: %v", id, err)
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) toggleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := s.taskService.ToggleTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("Error toggling task %d: %v", id, err)
		http.Error(w, "Failed to toggle task", http.StatusInternalServerError)
		return
	}

	// Only the XHR path gets the JSON body; a plain form post goes back
	// to the list.
	if isXHR(r) {
		respondWithJSON(w, http.StatusOK, map[string]any{
			"ok":        true,
			"completed": task.Completed,
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.taskService.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("Error deleting task %d: %v", id, err)
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
