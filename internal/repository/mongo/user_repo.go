package mongo

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository" // Import the repository interfaces package
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const UserCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(UserCollectionName),
	}
}

// Create inserts a new user with an empty log.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	if user.Log == nil {
		user.Log = []domain.LogEntry{}
	}
	user.Count = len(user.Log)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a user, including the full log, by ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns the ID and username of every user, oldest first.
func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	findOptions := options.Find().
		SetProjection(bson.M{"_id": 1, "username": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}}) // ObjectIDs grow with creation time

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// AppendLogEntry pushes entry onto the log and bumps count in a single update,
// so concurrent writers for the same user cannot lose entries.
func (r *mongoUserRepository) AppendLogEntry(ctx context.Context, id primitive.ObjectID, entry domain.LogEntry) (*domain.User, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$push": bson.M{"log": entry},
		"$inc":  bson.M{"count": 1},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, errors.Join(repository.ErrUpdateFailed, err)
	}
	return &user, nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Usernames are not unique; the index only speeds up lookups by name.
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_lookup"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
