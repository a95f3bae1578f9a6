package payments

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentIntentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentIntentMongoRepository(db *mongo.Database) contracts.PaymentIntentRepository {
	return &PaymentIntentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPaymentIntents),
	}
}

func (repo *PaymentIntentMongoRepository) CreateIntent(ctx context.Context, intent *models.PaymentIntent) (string, error) {
	now := time.Now()
	intent.CreatedAt = now
	intent.UpdatedAt = now

	result, err := repo.Collection.InsertOne(ctx, intent)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *PaymentIntentMongoRepository) FindByToken(ctx context.Context, token string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := repo.Collection.FindOne(ctx, bson.M{"token": token}).Decode(&intent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &intent, nil
}

func (repo *PaymentIntentMongoRepository) FindPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int64) ([]models.PaymentIntent, error) {
	filter := bson.M{
		"status":    constvars.PaymentIntentStatusPending,
		"createdAt": bson.M{"$lt": cutoff},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "lastCheckedAt", Value: 1}, {Key: "createdAt", Value: 1}}).
		SetLimit(limit)

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	intents := make([]models.PaymentIntent, 0)
	if err = cursor.All(ctx, &intents); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return intents, nil
}

func (repo *PaymentIntentMongoRepository) MarkChecked(ctx context.Context, token string, at time.Time) error {
	update := bson.M{"$set": bson.M{"lastCheckedAt": at}}
	if _, err := repo.Collection.UpdateOne(ctx, bson.M{"token": token}, update); err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *PaymentIntentMongoRepository) UpdateStatus(ctx context.Context, token string, status constvars.PaymentIntentStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	if _, err := repo.Collection.UpdateOne(ctx, bson.M{"token": token}, update); err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
