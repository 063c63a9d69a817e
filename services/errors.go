package services

import "errors"

// Shared service-level errors, mapped onto HTTP statuses by the handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed = errors.New("validation failed")

	ErrTeamNotFound   = errors.New("team not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found in match squads")

	ErrCountryConflict       = errors.New("this country is already registered")
	ErrMatchAlreadyCompleted = errors.New("match has already been completed")

	// Bracket creation precondition: rejected before any fixture is written.
	ErrInsufficientTeams = errors.New("exactly 8 registered teams are required to create the tournament")

	ErrCrestStorageUnavailable = errors.New("crest storage is not configured")
)
