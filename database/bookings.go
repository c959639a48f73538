package database

import (
	"context"
	"time"

	"booking-intake/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository struct {
	store BookingStore
	now   func() time.Time
}

// NewBookingRepository uses time.Now when now is nil.
func NewBookingRepository(store BookingStore, now func() time.Time) *BookingRepository {
	if now == nil {
		now = time.Now
	}
	return &BookingRepository{store: store, now: now}
}

func (r *BookingRepository) Create(ctx context.Context, fields map[string]interface{}) (model.Booking, error) {
	booking, err := model.NewBooking(fields, r.now())
	if err != nil {
		return model.Booking{}, err
	}

	if err := r.store.Insert(ctx, &booking); err != nil {
		return model.Booking{}, err
	}

	return booking, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	bookings, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (model.Booking, error) {
	objId, err := parseID(id)
	if err != nil {
		return model.Booking{}, err
	}
	return r.store.FindByID(ctx, objId)
}

func (r *BookingRepository) DeleteByID(ctx context.Context, id string) error {
	objId, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := r.store.DeleteByID(ctx, objId)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrNotFound
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, model.ErrInvalidID
	}
	return objId, nil
}
