package scope

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadOwnerID = errors.New("owner_id is invalid")
	ErrBadFrom    = errors.New("from date is invalid, use 'YYYY-MM-DD'")
	ErrBadTo      = errors.New("to date is invalid, use 'YYYY-MM-DD'")
)

// ParseFilterSpec builds a FilterSpec from raw query parameters. Empty
// strings mean "not supplied". The to date is pushed to end of day so an
// equal from/to pair covers the whole day.
func ParseFilterSpec(status, ownerID, from, to, search string) (FilterSpec, error) {
	spec := FilterSpec{
		Status:     status,
		SearchText: search,
	}

	if ownerID != "" {
		var parsed uint
		if _, err := fmt.Sscan(ownerID, &parsed); err != nil || parsed == 0 {
			return FilterSpec{}, ErrBadOwnerID
		}
		spec.OwnerID = &parsed
	}

	if from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return FilterSpec{}, ErrBadFrom
		}
		spec.DateFrom = &d
	}

	if to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			return FilterSpec{}, ErrBadTo
		}
		d = d.Add(24*time.Hour - time.Second)
		spec.DateTo = &d
	}

	return spec, nil
}
