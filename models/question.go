package models

import "strings"

// QuestionType identifies one of the question categories served by the bot
type QuestionType string

const (
	QuestionTypeTruth    QuestionType = "TRUTH"
	QuestionTypeDare     QuestionType = "DARE"
	QuestionTypeWYR      QuestionType = "WYR"
	QuestionTypeNHIE     QuestionType = "NHIE"
	QuestionTypeParanoia QuestionType = "PARANOIA"
)

// QuestionTypes lists every valid question type in display order
var QuestionTypes = []QuestionType{
	QuestionTypeTruth,
	QuestionTypeDare,
	QuestionTypeWYR,
	QuestionTypeNHIE,
	QuestionTypeParanoia,
}

// ParseQuestionType parses a case-insensitive question type string
func ParseQuestionType(s string) (QuestionType, bool) {
	candidate := QuestionType(strings.ToUpper(s))
	for _, qt := range QuestionTypes {
		if qt == candidate {
			return qt, true
		}
	}
	return "", false
}

// QuestionTypeNames renders the valid types for user-facing error messages
func QuestionTypeNames() []string {
	names := make([]string, 0, len(QuestionTypes))
	for _, qt := range QuestionTypes {
		names = append(names, string(qt))
	}
	return names
}

// Rating is a content maturity rating attached to every question
type Rating string

const (
	RatingPG   Rating = "PG"
	RatingPG13 Rating = "PG13"
	RatingR    Rating = "R"
)

// Ratings lists every valid rating, mildest first
var Ratings = []Rating{RatingPG, RatingPG13, RatingR}

// ParseRating parses a case-insensitive rating string
func ParseRating(s string) (Rating, bool) {
	candidate := Rating(strings.ToUpper(s))
	for _, r := range Ratings {
		if r == candidate {
			return r, true
		}
	}
	return "", false
}

// RatingNames renders the valid ratings for user-facing error messages
func RatingNames() []string {
	names := make([]string, 0, len(Ratings))
	for _, r := range Ratings {
		names = append(names, string(r))
	}
	return names
}

// DefaultRatings is the rating set used when a caller doesn't ask for
// anything specific. R is opt-in everywhere.
func DefaultRatings() []Rating {
	return []Rating{RatingPG, RatingPG13}
}

// Question is one question record from the question store
type Question struct {
	ID     string       `json:"id"       db:"id"`
	Type   QuestionType `json:"type"     db:"type"`
	Rating Rating       `json:"rating"   db:"rating"`
	Text   string       `json:"question" db:"question"`
}
