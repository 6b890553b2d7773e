package posting

import "errors"

var (
	// ErrTemplateNotFound indicates a missing or inactive template.
	ErrTemplateNotFound = errors.New("posting: template not found")
	// ErrAccountResolutionFailed indicates a reference that could not be
	// resolved to a postable account.
	ErrAccountResolutionFailed = errors.New("posting: account resolution failed")
	// ErrUnbalancedTemplateOutput indicates a template whose computed lines
	// do not balance. This is a configuration defect, not a data problem.
	ErrUnbalancedTemplateOutput = errors.New("posting: template output does not balance")
)
