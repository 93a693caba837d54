package errors

import "errors"

var (
	ErrUnauthorized            = errors.New("caller is not an administrator")
	ErrInvalidStatusTransition = errors.New("invalid workflow status transition")
	ErrAlreadyRegistered       = errors.New("voter is already registered")
	ErrNotAVoter               = errors.New("caller is not a registered voter")
	ErrProposalsNotOpen        = errors.New("proposals registration is not open")
	ErrEmptyDescription        = errors.New("proposal description is empty")
	ErrVotingNotOpen           = errors.New("voting session is not open")
	ErrAlreadyVoted            = errors.New("voter has already voted")
	ErrProposalNotFound        = errors.New("proposal not found")
	ErrIndexOutOfRange         = errors.New("proposal index out of range")
	ErrTallyNotReady           = errors.New("tally is not ready")
	ErrNoProposals             = errors.New("no proposals to tally")
	ErrInvalidInput            = errors.New("invalid election input")
)
