// Package service provides business logic implementations.
package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service wraps exactly one of
// these, so callers can dispatch with errors.Is and translate the kind to
// a user-facing response.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("requested resource not found")
	ErrForbidden    = errors.New("operation not allowed for this member")
	ErrInvalidState = errors.New("operation not allowed in current state")
)

// Specific errors, each wrapping its kind.
var (
	ErrGroupNameRequired   = fmt.Errorf("%w: group name is required", ErrValidation)
	ErrInvalidRuleSet      = fmt.Errorf("%w: unknown rule set", ErrValidation)
	ErrInvalidMemberKind   = fmt.Errorf("%w: unknown member kind", ErrValidation)
	ErrDisplayNameRequired = fmt.Errorf("%w: display name is required", ErrValidation)
	ErrAccountRequired     = fmt.Errorf("%w: human members require a linked account", ErrValidation)
	ErrAccountNotAllowed   = fmt.Errorf("%w: cpu members cannot carry a linked account", ErrValidation)
	ErrInvalidVote         = fmt.Errorf("%w: vote must be approve or reject", ErrValidation)
	ErrResultsMismatch     = fmt.Errorf("%w: results must cover each active member exactly once", ErrValidation)

	ErrGroupNotFound  = fmt.Errorf("%w: group", ErrNotFound)
	ErrMemberNotFound = fmt.Errorf("%w: member", ErrNotFound)
	ErrMatchNotFound  = fmt.Errorf("%w: match", ErrNotFound)

	ErrVoterNotEligible     = fmt.Errorf("%w: voter must be an active human member of the match's group", ErrForbidden)
	ErrSubmitterNotEligible = fmt.Errorf("%w: submitter must be an active human member of the group", ErrForbidden)

	ErrMatchAlreadyDecided = fmt.Errorf("%w: match already approved or rejected", ErrInvalidState)
	ErrLeagueFinalized     = fmt.Errorf("%w: league is finalized", ErrInvalidState)
)
