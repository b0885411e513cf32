package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"quizapp/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type userRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
}

func (userRow) TableName() string { return "users" }

func (r *userRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type questionRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	Prompt    string `gorm:"column:question;type:text;not null"`
	OptionA   string `gorm:"type:text;not null"`
	OptionB   string `gorm:"type:text;not null"`
	OptionC   string `gorm:"type:text;not null"`
	OptionD   string `gorm:"type:text;not null"`
	Correct   string `gorm:"size:1;not null"`
}

func (questionRow) TableName() string { return "questions" }

func (r *questionRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// a miss on username lookup is a normal login failure, not worth a log line
var gormLogger = logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
	SlowThreshold:             200 * time.Millisecond,
	LogLevel:                  logger.Warn,
	IgnoreRecordNotFoundError: true,
})

// GormStore keeps users and questions in a relational database,
// one table per collection.
type GormStore struct {
	db *gorm.DB
}

func OpenGorm(dsn string, attempts int) (*GormStore, error) {
	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(dsn)
	}
	if attempts < 1 {
		attempts = 1
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, attempts)

		db, err = gorm.Open(dialector, &gorm.Config{
			Logger:         gormLogger,
			TranslateError: true,
		})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database: connect after %d attempts: %w", attempts, err)
	}

	if err := db.AutoMigrate(&userRow{}, &questionRow{}); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) InsertUser(ctx context.Context, u *models.User) (string, error) {
	row := userRow{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrDuplicateKey
		}
		return "", fmt.Errorf("database: insert user: %w", err)
	}
	return row.ID, nil
}

func (s *GormStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database: find user: %w", err)
	}
	return &models.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Role:         models.UserRole(row.Role),
	}, nil
}

func (s *GormStore) InsertQuestion(ctx context.Context, q *models.Question) (string, error) {
	row := questionRow{
		Prompt:  q.Prompt,
		OptionA: q.OptionA,
		OptionB: q.OptionB,
		OptionC: q.OptionC,
		OptionD: q.OptionD,
		Correct: q.Correct,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("database: insert question: %w", err)
	}
	return row.ID, nil
}

func (s *GormStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var rows []questionRow
	if err := s.db.WithContext(ctx).Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("database: list questions: %w", err)
	}

	questions := make([]models.Question, 0, len(rows))
	for _, r := range rows {
		questions = append(questions, models.Question{
			ID:      r.ID,
			Prompt:  r.Prompt,
			OptionA: r.OptionA,
			OptionB: r.OptionB,
			OptionC: r.OptionC,
			OptionD: r.OptionD,
			Correct: r.Correct,
		})
	}
	return questions, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
