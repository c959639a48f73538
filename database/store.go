package database

import (
	"context"
	"errors"
	"fmt"

	"booking-intake/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingStore is the document store as seen by the repository: one call per
// operation, no transactions.
type BookingStore interface {
	// Insert persists booking and sets its Id to the one the store assigned.
	Insert(ctx context.Context, booking *model.Booking) error
	// FindAll returns every booking, newest createdAt first.
	FindAll(ctx context.Context) ([]model.Booking, error)
	// FindByID returns model.ErrNotFound when nothing matches.
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Booking, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type MongoStore struct {
	manager *Manager
}

func NewMongoStore(manager *Manager) *MongoStore {
	return &MongoStore{manager: manager}
}

func (s *MongoStore) Insert(ctx context.Context, booking *model.Booking) error {
	collection, err := s.manager.Collection(ctx)
	if err != nil {
		return err
	}

	res, err := collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("server side problem occured while writing booking to database: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected id type %T returned by database", res.InsertedID)
	}
	booking.Id = id
	return nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]model.Booking, error) {
	collection, err := s.manager.Collection(ctx)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{
		primitive.E{Key: "createdAt", Value: -1},
		primitive.E{Key: "_id", Value: -1},
	})
	cur, err := collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading bookings from database: %w", err)
	}

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("server side problem occured while reading bookings from database: %w", err)
	}

	return bookings, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (model.Booking, error) {
	collection, err := s.manager.Collection(ctx)
	if err != nil {
		return model.Booking{}, err
	}

	var booking model.Booking
	err = collection.FindOne(ctx, bson.D{primitive.E{Key: "_id", Value: id}}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Booking{}, model.ErrNotFound
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("server side problem occured while reading booking from database: %w", err)
	}

	return booking, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	collection, err := s.manager.Collection(ctx)
	if err != nil {
		return false, err
	}

	res, err := collection.DeleteOne(ctx, bson.D{primitive.E{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("server side problem occured while deleting booking from database: %w", err)
	}

	return res.DeletedCount > 0, nil
}
