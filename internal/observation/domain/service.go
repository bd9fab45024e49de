package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Record(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Statistics(ctx context.Context) (StatisticsResponse, error)
}

// CreateRequest carries the raw form values; parsing happens in the service.
type CreateRequest struct {
	FieldName  string `json:"field_name"`
	WaterUsage string `json:"water_usage"`
	Rainfall   string `json:"rainfall"`
}

type Response struct {
	ID         string    `json:"id"`
	Index      int       `json:"index"`
	FieldName  string    `json:"field_name"`
	WaterUsage float64   `json:"water_usage"`
	Rainfall   float64   `json:"rainfall"`
	RecordedAt time.Time `json:"recorded_at"`
}

// StatisticsResponse describes water usage only. With no observations HasData
// is false and every number is zero.
type StatisticsResponse struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Max      float64 `json:"max"`
	Min      float64 `json:"min"`
	HasData  bool    `json:"has_data"`
}

// MaxMeasurement bounds accepted water usage and rainfall so that squared
// deviations in the statistics stay finite.
const MaxMeasurement = 1e12

var (
	ErrInvalidFieldName  = errors.New("invalid_field_name")
	ErrInvalidWaterUsage = errors.New("invalid_water_usage")
	ErrInvalidRainfall   = errors.New("invalid_rainfall")
)

// IsValidationError reports whether err is one of the input rejections above.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidFieldName) ||
		errors.Is(err, ErrInvalidWaterUsage) ||
		errors.Is(err, ErrInvalidRainfall)
}
