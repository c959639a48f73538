package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DATE_LAYOUT renders the default booking date, e.g. "10/19/2026, 3:04:05 PM".
const DATE_LAYOUT string = "1/2/2006, 3:04:05 PM"

var (
	ErrInvalidID = errors.New("invalid booking id")
	ErrNotFound  = errors.New("booking not found")
)

type Booking struct {
	Id           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PackagePrice float64            `json:"packagePrice" bson:"packagePrice"`
	NumPersons   int                `json:"numPersons" bson:"numPersons"`
	CarType      string             `json:"carType" bson:"carType"`
	Total        float64            `json:"total" bson:"total"`
	Date         string             `json:"date" bson:"date"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid booking: " + strings.Join(e.Problems, "; ")
}

// NewBooking builds a Booking from a decoded JSON object. Every required field
// is checked and all problems are reported together. The returned booking has
// no Id; the store assigns it on insert. CreatedAt is kept in UTC at
// millisecond precision, which is what the store round-trips.
func NewBooking(fields map[string]interface{}, now time.Time) (Booking, error) {
	var problems []string
	booking := Booking{CreatedAt: now.UTC().Truncate(time.Millisecond)}

	if price, err := nonNegativeNumber(fields, "packagePrice"); err != nil {
		problems = append(problems, err.Error())
	} else {
		booking.PackagePrice = price
	}

	if persons, err := positiveInteger(fields, "numPersons"); err != nil {
		problems = append(problems, err.Error())
	} else {
		booking.NumPersons = persons
	}

	if carType, err := requiredString(fields, "carType"); err != nil {
		problems = append(problems, err.Error())
	} else {
		booking.CarType = carType
	}

	if total, err := nonNegativeNumber(fields, "total"); err != nil {
		problems = append(problems, err.Error())
	} else {
		booking.Total = total
	}

	switch date := fields["date"].(type) {
	case nil:
		booking.Date = now.Format(DATE_LAYOUT)
	case string:
		booking.Date = date
		if strings.TrimSpace(date) == "" {
			booking.Date = now.Format(DATE_LAYOUT)
		}
	default:
		problems = append(problems, "date must be a string")
	}

	if len(problems) > 0 {
		return Booking{}, &ValidationError{Problems: problems}
	}
	return booking, nil
}

func number(fields map[string]interface{}, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%v is required", key)
	}
	value, ok := raw.(float64)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%v must be a number", key)
	}
	return value, nil
}

func nonNegativeNumber(fields map[string]interface{}, key string) (float64, error) {
	value, err := number(fields, key)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%v cannot be negative", key)
	}
	return value, nil
}

func positiveInteger(fields map[string]interface{}, key string) (int, error) {
	value, err := number(fields, key)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("%v must be a whole number", key)
	}
	if value < 1 {
		return 0, fmt.Errorf("%v must be at least 1", key)
	}
	if value > math.MaxInt32 {
		return 0, fmt.Errorf("%v is too large", key)
	}
	return int(value), nil
}

func requiredString(fields map[string]interface{}, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%v is required", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%v must be a string", key)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%v cannot be empty", key)
	}
	return value, nil
}
