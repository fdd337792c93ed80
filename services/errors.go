package services

import "errors"

// Validation errors: rejected synchronously, mapped to 400.
var (
	ErrInvalidVoteValue = errors.New("vote value must be 1 or -1")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrIssueNotFound    = errors.New("issue not found")
)

// Conflict errors: the caller acted on stale state, mapped distinctly
// from bad input so clients can react.
var (
	ErrIssueNotAvailable = errors.New("this issue is no longer available or has already been claimed")
	ErrResolveConflict   = errors.New("issue is not assigned to this crew or is already resolved")
	ErrIssueNotResolved  = errors.New("feedback can only be submitted for resolved issues")
	ErrNoAssignedCrew    = errors.New("no ambulance was assigned to this issue")
	ErrDuplicateFeedback = errors.New("feedback for this issue was already submitted")
)
