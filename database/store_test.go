package database

import (
	"context"
	"testing"
	"time"

	"booking-intake/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const bookingsNamespace = "booking-service.bookings"

func newMockManager(mt *mtest.T, dials *int) *Manager {
	return NewManager(ManagerConfig{
		ConnString:     "mongodb://mock:27017",
		Database:       "booking-service",
		Collection:     "bookings",
		ConnectTimeout: time.Second,
		Dial:           func(context.Context, string, time.Duration) (*mongo.Client, error) {
			if dials != nil {
				*dials++
			}
			return mt.Client, nil
		},
	}, quietLogger)
}

func bookingDocument(id primitive.ObjectID, carType string, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "packagePrice", Value: 5000.0},
		{Key: "numPersons", Value: 2},
		{Key: "carType", Value: carType},
		{Key: "total", Value: 10000.0},
		{Key: "date", Value: "10/19/2026, 9:00:00 AM"},
		{Key: "createdAt", Value: createdAt},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	createdAt := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

	mt.Run("insert assigns id", func(mt *mtest.T) {
		store := NewMongoStore(newMockManager(mt, nil))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		booking := model.Booking{CarType: "SUV", NumPersons: 2, CreatedAt: createdAt}
		require.NoError(mt, store.Insert(context.Background(), &booking))
		assert.False(mt, booking.Id.IsZero())
	})

	mt.Run("find all sorts newest first", func(mt *mtest.T) {
		store := NewMongoStore(newMockManager(mt, nil))
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNamespace, mtest.FirstBatch,
			bookingDocument(newer, "Van", createdAt.Add(time.Minute)),
			bookingDocument(older, "SUV", createdAt)))

		bookings, err := store.FindAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, bookings, 2)
		assert.Equal(mt, newer, bookings[0].Id)
		assert.Equal(mt, "Van", bookings[0].CarType)
		assert.Equal(mt, 2, bookings[1].NumPersons)
		assert.Equal(mt, createdAt, bookings[1].CreatedAt)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)

		sortDoc := started.Command.Lookup("sort").Document()
		elements, err := sortDoc.Elements()
		require.NoError(mt, err)
		require.Len(mt, elements, 2)
		assert.Equal(mt, "createdAt", elements[0].Key())
		assert.Equal(mt, int64(-1), elements[0].Value().AsInt64())
		assert.Equal(mt, "_id", elements[1].Key())
		assert.Equal(mt, int64(-1), elements[1].Value().AsInt64())
	})

	mt.Run("find all empty", func(mt *mtest.T) {
		store := NewMongoStore(newMockManager(mt, nil))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNamespace, mtest.FirstBatch))

		bookings, err := store.FindAll(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, bookings)
		assert.Empty(mt, bookings)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		store := NewMongoStore(newMockManager(mt, nil))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNamespace, mtest.FirstBatch,
			bookingDocument(id, "SUV", createdAt)))

		booking, err := store.FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, booking.Id)
		assert.Equal(mt, "SUV", booking.CarType)
		assert.Equal(mt, 10000.0, booking.Total)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		store := NewMongoStore(newMockManager(mt, nil))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNamespace, mtest.FirstBatch))

		_, err := store.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, model.ErrNotFound)
	})

	mt.Run("find by id server error", func(mt *mtest.T) {
		store := NewMongoStore(newMockManager(mt, nil))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on booking-service",
		}))

		_, err := store.FindByID(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, model.ErrNotFound)
		assert.Contains(mt, err.Error(), "not authorized")
	})

	mt.Run("delete by id", func(mt *mtest.T) {
		store := NewMongoStore(newMockManager(mt, nil))
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		deleted, err := store.DeleteByID(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, deleted)

		deleted, err = store.DeleteByID(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.False(mt, deleted)
	})

	mt.Run("repository delete of missing booking", func(mt *mtest.T) {
		repo := NewBookingRepository(NewMongoStore(newMockManager(mt, nil)), nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, model.ErrNotFound)
	})

	mt.Run("close resets connection", func(mt *mtest.T) {
		dials := 0
		manager := newMockManager(mt, &dials)

		client, err := manager.Acquire(context.Background())
		require.NoError(mt, err)
		assert.Same(mt, mt.Client, client)
		assert.Equal(mt, Connected, manager.State())

		require.NoError(mt, manager.Close(context.Background()))
		assert.Equal(mt, Unconnected, manager.State())
		assert.NoError(mt, manager.Close(context.Background()))

		_, err = manager.Acquire(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, 2, dials)
	})
}
