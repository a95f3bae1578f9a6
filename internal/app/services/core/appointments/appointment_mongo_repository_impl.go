package appointments

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

var (
	newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}
	oldestFirst = bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}
)

func (repo *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrSlotAlreadyBooked(err, appointment.SlotDate, appointment.SlotTime)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, nil
	}

	var appointment models.Appointment
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
}

func (repo *AppointmentMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{"docId": doctorID}, options.Find().SetSort(newestFirst))
}

// FindActiveByDoctorID is ordered oldest first so a ledger rebuilt from it keeps booking order.
func (repo *AppointmentMongoRepository) FindActiveByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{"docId": doctorID, "cancelled": false}, options.Find().SetSort(oldestFirst))
}

func (repo *AppointmentMongoRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (repo *AppointmentMongoRepository) FindLatest(ctx context.Context, limit int64) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(limit))
}

func (repo *AppointmentMongoRepository) setIf(ctx context.Context, appointmentID string, guard, set bson.M) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, nil
	}

	filter := bson.M{"_id": objectID}
	for key, value := range guard {
		filter[key] = value
	}

	result, err := repo.Collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

func (repo *AppointmentMongoRepository) MarkCancelled(ctx context.Context, appointmentID string) (bool, error) {
	return repo.setIf(ctx, appointmentID,
		bson.M{"cancelled": false, "isCompleted": false},
		bson.M{"cancelled": true},
	)
}

func (repo *AppointmentMongoRepository) MarkCompleted(ctx context.Context, appointmentID string) (bool, error) {
	return repo.setIf(ctx, appointmentID,
		bson.M{"cancelled": false, "isCompleted": false},
		bson.M{"isCompleted": true},
	)
}

func (repo *AppointmentMongoRepository) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	return repo.setIf(ctx, appointmentID,
		bson.M{"payment": false},
		bson.M{"payment": true},
	)
}

func (repo *AppointmentMongoRepository) DeleteByID(ctx context.Context, appointmentID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, nil
	}

	result, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (repo *AppointmentMongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := repo.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}
