package database

import (
	"context"
	"medibook-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

// requiredIndexes backs the uniqueness rules the repositories rely on, plus the
// lookups done per request or per worker cycle.
var requiredIndexes = []collectionIndexes{
	{
		collection: constvars.MongoCollectionDoctors,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "available", Value: 1}}, Options: options.Index().SetName("approved_available")},
		},
	},
	{
		collection: constvars.MongoCollectionUsers,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		},
	},
	{
		collection: constvars.MongoCollectionAppointments,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "docId", Value: 1}, {Key: "cancelled", Value: 1}}, Options: options.Index().SetName("doctor_active")},
			{
				// At most one live appointment per doctor slot, whatever the ledger says.
				Keys: bson.D{{Key: "docId", Value: 1}, {Key: "slotDate", Value: 1}, {Key: "slotTime", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"cancelled": false}).
					SetName("uniq_active_slot"),
			},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index().SetName("patient_recent")},
		},
	},
	{
		collection: constvars.MongoCollectionPaymentIntents,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_token")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "lastCheckedAt", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("status_checked_created")},
		},
	},
}

// EnsureIndexes creates the indexes above. Existing indexes with the same
// definition are left untouched, so it is safe to run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	var created []string
	for _, spec := range requiredIndexes {
		names, err := db.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models)
		if err != nil {
			return created, err
		}
		for _, name := range names {
			created = append(created, spec.collection+"."+name)
		}
	}
	return created, nil
}
