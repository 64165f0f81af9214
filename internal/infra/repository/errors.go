package repository

import "errors"

var (
	ErrInvalidPlanData = errors.New("invalid plan data")
	ErrInvalidSyncData = errors.New("invalid sync record data")
)
