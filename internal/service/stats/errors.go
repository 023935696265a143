package stats

import "errors"

var (
	ErrInvalidPharmacyID = errors.New("invalid pharmacy id")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
