package questions

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdbot/models"
)

// MockQuestionsService implements the services.QuestionsService interface for testing
type MockQuestionsService struct {
	mock.Mock
}

// GetRandomQuestion mocks fetching one random question
func (m *MockQuestionsService) GetRandomQuestion(
	ctx context.Context,
	questionType models.QuestionType,
	ratings []models.Rating,
) (*models.Question, error) {
	args := m.Called(ctx, questionType, ratings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

// GetQuestionByID mocks fetching one question by its identifier
func (m *MockQuestionsService) GetQuestionByID(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}
