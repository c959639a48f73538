// Package databasetest provides an in-memory BookingStore for tests.
package databasetest

import (
	"context"
	"sort"
	"sync"

	"booking-intake/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryStore struct {
	mu       sync.Mutex
	bookings []model.Booking
	calls    int

	// Err, when set, is returned by every operation.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Calls reports how many operations reached the store.
func (s *MemoryStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *MemoryStore) Insert(_ context.Context, booking *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return s.Err
	}

	booking.Id = primitive.NewObjectID()
	s.bookings = append(s.bookings, *booking)
	return nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}

	bookings := make([]model.Booking, len(s.bookings))
	copy(bookings, s.bookings)
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].Id.Hex() > bookings[j].Id.Hex()
	})
	return bookings, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return model.Booking{}, s.Err
	}

	for _, booking := range s.bookings {
		if booking.Id == id {
			return booking, nil
		}
	}
	return model.Booking{}, model.ErrNotFound
}

func (s *MemoryStore) DeleteByID(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return false, s.Err
	}

	for i, booking := range s.bookings {
		if booking.Id == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
