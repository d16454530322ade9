package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mercadoscout/internal/models"
	"mercadoscout/logger"
)

// Connect opens a client and pings the deployment
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// UserRepository persists users and their embedded favorites sets
type UserRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

// NewUserRepository creates a repository over the users collection
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		log:        logger.ForStore(),
	}
}

// EnsureIndexes creates the unique email index
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByEmail returns the user with the given email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Insert stores a new user and returns its id
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user.ID = primitive.NewObjectID()
	if user.Favorites == nil {
		user.Favorites = []models.FavoriteProduct{}
	}

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", models.ErrDuplicateEmail
		}
		return "", err
	}
	return user.ID.Hex(), nil
}

// AddFavorite appends the product to the user's favorites unless an entry with
// the same id is already present. A single atomic update; the id guard makes
// duplicate adds no-ops even under concurrent requests.
func (r *UserRepository) AddFavorite(ctx context.Context, userID string, fav models.FavoriteProduct) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "favorites.id": bson.M{"$ne": fav.ID}},
		bson.M{"$push": bson.M{"favorites": fav}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// either the user is gone or the product is already favorited
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if count == 0 {
			return models.ErrUserNotFound
		}
	}
	return nil
}

// ListFavorites returns the user's favorites array
func (r *UserRepository) ListFavorites(ctx context.Context, userID string) ([]models.FavoriteProduct, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return user.Favorites, nil
}

// RemoveFavorite pulls entries matching productID from the user's favorites.
// Pulling a non-member id leaves the set unchanged and is not an error.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, productID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"favorites": bson.M{"id": productID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
