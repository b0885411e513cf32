package database

import (
	"context"
	"errors"
	"strings"

	"quizapp/internal/config"
	"quizapp/internal/models"
)

var (
	ErrNotFound     = errors.New("database: not found")
	ErrDuplicateKey = errors.New("database: duplicate key")
)

// UserRepository is the "users" collection.
type UserRepository interface {
	// InsertUser stores u and returns the id assigned by the store.
	// A second user with the same username yields ErrDuplicateKey.
	InsertUser(ctx context.Context, u *models.User) (string, error)
	// FindUserByUsername returns ErrNotFound when nobody has that username.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// QuestionRepository is the "questions" collection.
type QuestionRepository interface {
	InsertQuestion(ctx context.Context, q *models.Question) (string, error)
	// ListQuestions returns every question, oldest first.
	ListQuestions(ctx context.Context) ([]models.Question, error)
}

type Store interface {
	UserRepository
	QuestionRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open picks the backend from the DSN scheme: mongodb:// and mongodb+srv://
// go to MongoDB, sqlite://<path> to sqlite, anything else to postgres.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if isMongoDSN(cfg.DBDSN) {
		s, err := OpenMongo(ctx, cfg.DBDSN, cfg.DBName)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := OpenGorm(cfg.DBDSN, cfg.DBConnectAttempts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func isMongoDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "mongodb://") || strings.HasPrefix(dsn, "mongodb+srv://")
}
