package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tdbot/core"
	"tdbot/models"
	"tdbot/services/questions"
)

func newAPIServer(mockQuestions *questions.MockQuestionsService) *mux.Router {
	handler := NewAPIHandler(mockQuestions)
	router := mux.NewRouter()
	handler.SetupEndpoints(router, []string{"*"})
	return router
}

func TestHandleRandomQuestion(t *testing.T) {
	t.Run("serves a question with the default ratings", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)
		mockQuestions.On("GetRandomQuestion", mock.Anything, models.QuestionTypeTruth, models.DefaultRatings()).
			Return(&models.Question{
				ID:     "q_1",
				Type:   models.QuestionTypeTruth,
				Rating: models.RatingPG,
				Text:   "What is your favorite food?",
			}, nil)

		recorder := httptest.NewRecorder()
		newAPIServer(mockQuestions).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/truth", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var question models.Question
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &question))
		assert.Equal(t, "What is your favorite food?", question.Text)
		mockQuestions.AssertExpectations(t)
	})

	t.Run("honors explicit rating query parameters", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)
		mockQuestions.On("GetRandomQuestion", mock.Anything, models.QuestionTypeDare, []models.Rating{models.RatingR}).
			Return(&models.Question{ID: "q_2", Type: models.QuestionTypeDare, Rating: models.RatingR, Text: "dare"}, nil)

		recorder := httptest.NewRecorder()
		newAPIServer(mockQuestions).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/dare?rating=r", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		mockQuestions.AssertExpectations(t)
	})

	t.Run("rejects unknown question types listing valid ones", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)

		recorder := httptest.NewRecorder()
		newAPIServer(mockQuestions).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/trivia", nil))

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "TRUTH")
		assert.Contains(t, recorder.Body.String(), "PARANOIA")
		mockQuestions.AssertNotCalled(t, "GetRandomQuestion", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown ratings listing valid ones", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)

		recorder := httptest.NewRecorder()
		newAPIServer(mockQuestions).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/truth?rating=nc17", nil))

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "PG13")
	})

	t.Run("returns 404 when no question matches", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)
		mockQuestions.On("GetRandomQuestion", mock.Anything, models.QuestionTypeNHIE, models.DefaultRatings()).
			Return(nil, core.ErrNotFound)

		recorder := httptest.NewRecorder()
		newAPIServer(mockQuestions).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/nhie", nil))

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("serves a question by id", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)
		mockQuestions.On("GetQuestionByID", mock.Anything, "q_42").
			Return(&models.Question{
				ID:     "q_42",
				Type:   models.QuestionTypeWYR,
				Rating: models.RatingPG13,
				Text:   "Would you rather fly or be invisible?",
			}, nil)

		recorder := httptest.NewRecorder()
		newAPIServer(mockQuestions).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/question/q_42", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		var question models.Question
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &question))
		assert.Equal(t, "q_42", question.ID)
		mockQuestions.AssertExpectations(t)
	})

	t.Run("returns 404 for an unknown question id", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)
		mockQuestions.On("GetQuestionByID", mock.Anything, "q_missing").
			Return(nil, core.ErrNotFound)

		recorder := httptest.NewRecorder()
		newAPIServer(mockQuestions).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/question/q_missing", nil))

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("rate limits repeated requests from one address", func(t *testing.T) {
		mockQuestions := new(questions.MockQuestionsService)
		mockQuestions.On("GetRandomQuestion", mock.Anything, models.QuestionTypeTruth, models.DefaultRatings()).
			Return(&models.Question{ID: "q_1", Type: models.QuestionTypeTruth, Rating: models.RatingPG, Text: "q"}, nil)
		server := newAPIServer(mockQuestions)

		var lastCode int
		for i := 0; i < 6; i++ {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/api/truth", nil)
			request.RemoteAddr = "203.0.113.9:1234"
			server.ServeHTTP(recorder, request)
			lastCode = recorder.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, lastCode)
	})
}

func TestCORSScoping(t *testing.T) {
	newQuestionMock := func() *questions.MockQuestionsService {
		mockQuestions := new(questions.MockQuestionsService)
		mockQuestions.On("GetRandomQuestion", mock.Anything, models.QuestionTypeTruth, models.DefaultRatings()).
			Return(&models.Question{ID: "q_1", Type: models.QuestionTypeTruth, Rating: models.RatingPG, Text: "q"}, nil)
		return mockQuestions
	}

	t.Run("v1 responses carry the cross-origin header", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/truth", nil)
		request.Header.Set("Origin", "https://example.com")
		newAPIServer(newQuestionMock()).ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("api responses stay same-origin", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/truth", nil)
		request.Header.Set("Origin", "https://example.com")
		newAPIServer(newQuestionMock()).ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})
}
