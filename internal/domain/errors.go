package domain

import "errors"

var (
	ErrPlanNotFound      = errors.New("schedule plan not found")
	ErrSyncRecordMissing = errors.New("sync record not found")
	ErrNoProposalFound   = errors.New("no slot proposal array found in optimizer response")
)
