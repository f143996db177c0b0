package questions

import (
	"context"
	"fmt"
	"log"

	"tdbot/core"
	"tdbot/db"
	"tdbot/models"
)

type QuestionsService struct {
	questionsRepo *db.PostgresQuestionsRepository
}

func NewQuestionsService(repo *db.PostgresQuestionsRepository) *QuestionsService {
	return &QuestionsService{questionsRepo: repo}
}

// GetRandomQuestion fetches one random question of the given type limited to
// the allowed ratings. An empty ratings slice falls back to the default set.
func (s *QuestionsService) GetRandomQuestion(
	ctx context.Context,
	questionType models.QuestionType,
	ratings []models.Rating,
) (*models.Question, error) {
	log.Printf("📋 Starting to get random %s question", questionType)
	if len(ratings) == 0 {
		ratings = models.DefaultRatings()
	}

	question, err := s.questionsRepo.GetRandomQuestion(ctx, questionType, ratings)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get random question: %w", err)
	}

	log.Printf("📋 Completed successfully - got %s question %s", questionType, question.ID)
	return question, nil
}

// GetQuestionByID fetches one question by its identifier
func (s *QuestionsService) GetQuestionByID(ctx context.Context, id string) (*models.Question, error) {
	question, err := s.questionsRepo.GetQuestionByID(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return question, nil
}
