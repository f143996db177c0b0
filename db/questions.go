package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tdbot/core"
	"tdbot/models"
)

type PostgresQuestionsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for questions table
var questionsColumns = []string{
	"id",
	"type",
	"rating",
	"question",
}

func NewPostgresQuestionsRepository(db *sqlx.DB, schema string) *PostgresQuestionsRepository {
	return &PostgresQuestionsRepository{db: db, schema: schema}
}

// GetRandomQuestion fetches one random question of the given type whose
// rating is in the allowed set. Returns core.ErrNotFound when nothing matches.
func (r *PostgresQuestionsRepository) GetRandomQuestion(
	ctx context.Context,
	questionType models.QuestionType,
	ratings []models.Rating,
) (*models.Question, error) {
	ratingStrs := make([]string, 0, len(ratings))
	for _, rating := range ratings {
		ratingStrs = append(ratingStrs, string(rating))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s.questions
		WHERE type = $1 AND rating = ANY($2)
		ORDER BY RANDOM()
		LIMIT 1
	`, strings.Join(questionsColumns, ", "), r.schema)

	var question models.Question
	err := r.db.QueryRowxContext(ctx, query, string(questionType), pq.Array(ratingStrs)).
		StructScan(&question)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get random question: %w", err)
	}

	return &question, nil
}

// GetQuestionByID fetches one question by its identifier
func (r *PostgresQuestionsRepository) GetQuestionByID(
	ctx context.Context,
	id string,
) (*models.Question, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s.questions
		WHERE id = $1
	`, strings.Join(questionsColumns, ", "), r.schema)

	var question models.Question
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&question)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}

	return &question, nil
}
