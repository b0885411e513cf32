package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizapp/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 10 * time.Second

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
	Role     string             `bson:"role"`
}

type questionDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Question string             `bson:"question"`
	OptionA  string             `bson:"option_a"`
	OptionB  string             `bson:"option_b"`
	OptionC  string             `bson:"option_c"`
	OptionD  string             `bson:"option_d"`
	Correct  string             `bson:"correct"`
}

func newUserDoc(u *models.User) userDoc {
	return userDoc{
		Username: u.Username,
		Password: u.PasswordHash,
		Role:     string(u.Role),
	}
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
		Role:         models.UserRole(d.Role),
	}
}

func newQuestionDoc(q *models.Question) questionDoc {
	return questionDoc{
		Question: q.Prompt,
		OptionA:  q.OptionA,
		OptionB:  q.OptionB,
		OptionC:  q.OptionC,
		OptionD:  q.OptionD,
		Correct:  q.Correct,
	}
}

func (d questionDoc) model() models.Question {
	return models.Question{
		ID:      d.ID.Hex(),
		Prompt:  d.Question,
		OptionA: d.OptionA,
		OptionB: d.OptionB,
		OptionC: d.OptionC,
		OptionD: d.OptionD,
		Correct: d.Correct,
	}
}

// MongoStore keeps users and questions in the "users" and "questions"
// collections of one MongoDB database.
type MongoStore struct {
	client    *mongo.Client
	users     *mongo.Collection
	questions *mongo.Collection
}

func OpenMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: mongo ping: %w", err)
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client:    client,
		users:     db.Collection("users"),
		questions: db.Collection("questions"),
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: mongo username index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) InsertUser(ctx context.Context, u *models.User) (string, error) {
	res, err := s.users.InsertOne(ctx, newUserDoc(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		return "", fmt.Errorf("database: insert user: %w", err)
	}
	return insertedHex(res)
}

func (s *MongoStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database: find user: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoStore) InsertQuestion(ctx context.Context, q *models.Question) (string, error) {
	res, err := s.questions.InsertOne(ctx, newQuestionDoc(q))
	if err != nil {
		return "", fmt.Errorf("database: insert question: %w", err)
	}
	return insertedHex(res)
}

func (s *MongoStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	// ObjectIDs start with a timestamp, so _id order is insertion order
	cur, err := s.questions.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("database: list questions: %w", err)
	}

	var docs []questionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("database: list questions: %w", err)
	}

	questions := make([]models.Question, 0, len(docs))
	for _, d := range docs {
		questions = append(questions, d.model())
	}
	return questions, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func insertedHex(res *mongo.InsertOneResult) (string, error) {
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("database: unexpected inserted id %T", res.InsertedID)
	}
	return oid.Hex(), nil
}
