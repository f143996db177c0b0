package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"tdbot/core"
	"tdbot/models"
	"tdbot/services"
	"tdbot/services/ratelimit"
)

// APIHandler serves the public question API. It shares the question store
// with the bot commands but applies its own per-IP rate limit.
type APIHandler struct {
	questionsService services.QuestionsService
	limiter          *ratelimit.Limiter
}

func NewAPIHandler(questionsService services.QuestionsService) *APIHandler {
	return &APIHandler{
		questionsService: questionsService,
		limiter:          ratelimit.NewLimiter(ratelimit.DefaultMaxRequests, ratelimit.DefaultWindow),
	}
}

type apiError struct {
	Error string `json:"error"`
}

// SetupEndpoints registers the public question API. Only the versioned /v1
// surface allows cross-origin browser access; /api stays same-origin.
func (h *APIHandler) SetupEndpoints(router *mux.Router, allowedOrigins []string) {
	router.HandleFunc("/api/question/{questionID}", h.HandleQuestionByID).Methods("GET")
	router.HandleFunc("/api/{questionType}", h.HandleRandomQuestion).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	router.Handle("/v1/{questionType}", c.Handler(http.HandlerFunc(h.HandleRandomQuestion))).
		Methods("GET", "OPTIONS")
}

// HandleRandomQuestion is the GET /api/{questionType} endpoint. Ratings are
// selected with repeated ?rating= query parameters and default to the
// non-explicit set.
func (h *APIHandler) HandleRandomQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, apiError{Error: "rate limit exceeded, slow down"})
		return
	}

	questionType, ok := models.ParseQuestionType(mux.Vars(r)["questionType"])
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Error: fmt.Sprintf(
			"invalid question type, must be one of: %s",
			strings.Join(models.QuestionTypeNames(), ", "))})
		return
	}

	ratings := models.DefaultRatings()
	if requested := r.URL.Query()["rating"]; len(requested) > 0 {
		ratings = make([]models.Rating, 0, len(requested))
		for _, raw := range requested {
			rating, ok := models.ParseRating(raw)
			if !ok {
				writeJSON(w, http.StatusBadRequest, apiError{Error: fmt.Sprintf(
					"invalid rating %q, must be one of: %s",
					raw, strings.Join(models.RatingNames(), ", "))})
				return
			}
			ratings = append(ratings, rating)
		}
	}

	question, err := h.questionsService.GetRandomQuestion(r.Context(), questionType, ratings)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeJSON(w, http.StatusNotFound, apiError{Error: "no question matches the requested ratings"})
			return
		}
		log.Printf("❌ Failed to serve random question: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// HandleQuestionByID is the GET /api/question/{questionID} endpoint
func (h *APIHandler) HandleQuestionByID(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, apiError{Error: "rate limit exceeded, slow down"})
		return
	}

	question, err := h.questionsService.GetQuestionByID(r.Context(), mux.Vars(r)["questionID"])
	if err != nil {
		if core.IsNotFoundError(err) {
			writeJSON(w, http.StatusNotFound, apiError{Error: "no question with that id"})
			return
		}
		log.Printf("❌ Failed to serve question by id: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func clientIP(r *http.Request) string {
	// honor the proxy header the hosting platform sets
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}
