package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid auth token")

	// ErrCourseNotFound is the create signal for course resolution, not a
	// failure: a lookup that matches no row falls through to the insert.
	ErrCourseNotFound = errors.New("course doesn't exist")
	ErrCourseExists   = errors.New("course with such name already exists")

	ErrRoundNotFound = errors.New("round doesn't exist")
	ErrOwnerNotFound = errors.New("owner doesn't exist")
	ErrWrongOwner    = errors.New("record belongs to a different user")
	ErrRoundComplete = errors.New("round is already complete")

	ErrInvalidHole     = errors.New("hole number outside the round")
	ErrUnknownShotType = errors.New("shot type not in configured vocabulary")
	ErrUnknownOutcome  = errors.New("outcome not in configured vocabulary")

	ErrInsightNotFound = errors.New("insight doesn't exist")
	ErrInvalidRating   = errors.New("feedback rating must be between 1 and 3")
)
