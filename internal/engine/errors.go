package engine

import "errors"

var (
	// ErrInvalidMeasurement marks biometric or configuration input outside its domain.
	ErrInvalidMeasurement = errors.New("invalid measurement")
	// ErrComputation marks a calculation that produced no usable calorie target.
	ErrComputation = errors.New("computation error")
)
