package http

import (
	"context"
	"net/http"
	"time"

	"quizdeck-service/internal/app"
	"github.com/gorilla/websocket"
)

// Handler maps the REST surface onto the application services.
type Handler struct {
	accounts *app.AccountService
	catalog  *app.CatalogService
	scores   *app.ScoreService
	timeout  time.Duration
	upgrader websocket.Upgrader
}

func NewHandler(accounts *app.AccountService, catalog *app.CatalogService, scores *app.ScoreService, timeout time.Duration) *Handler {
	return &Handler{
		accounts: accounts,
		catalog:  catalog,
		scores:   scores,
		timeout:  timeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// methods is a verb -> handler dispatch table for one resource path.
type methods map[string]http.HandlerFunc

// Routes builds the full HTTP surface.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Handle("/user", h.resource(methods{
		http.MethodGet:    h.getUser,
		http.MethodPut:    h.registerUser,
		http.MethodPost:   h.renameUser,
		http.MethodDelete: h.deleteUser,
	}))

	mux.Handle("/languages", h.resource(methods{
		http.MethodGet:  h.listLanguages,
		http.MethodPost: h.addLanguage,
	}))

	mux.Handle("/game/questions", h.resource(methods{
		http.MethodGet:  h.listQuestions,
		http.MethodPost: h.addQuestion,
	}))

	mux.Handle("/game/userScore", h.resource(methods{
		http.MethodPost: h.submitScore,
	}))

	mux.Handle("/user/languages", h.resource(methods{
		http.MethodGet:    h.listUserScores,
		http.MethodPost:   h.startSubject,
		http.MethodPut:    h.recordAnswer,
		http.MethodDelete: h.dropSubject,
	}))

	mux.Handle("/leaderboard", h.resource(methods{
		http.MethodGet:    h.getLeaderboard,
		http.MethodPost:   h.createLeaderboardEntry,
		http.MethodPut:    h.updateLeaderboardEntry,
		http.MethodDelete: h.deleteLeaderboardEntry,
	}))
	mux.HandleFunc("/leaderboard/live", h.liveLeaderboard)

	mux.Handle("/admin/totalUsers", h.resource(methods{
		http.MethodGet: h.totalUsers,
	}))
	mux.Handle("/admin/totalQuestions", h.resource(methods{
		http.MethodGet: h.totalQuestions,
	}))

	return mux
}

// resource applies CORS headers, preflight handling, method dispatch, and the
// per-request deadline shared by every REST endpoint.
func (h *Handler) resource(m methods) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handle, ok := m[r.Method]
		if !ok {
			writeText(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		handle(w, r.WithContext(ctx))
	})
}

func setCORSHeaders(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
}
