package domain

// ResponseMode selects how verbose a grounded answer should be.
type ResponseMode string

// Available response modes.
const (
	// ResponseModeConcise keeps answers to a few sentences.
	ResponseModeConcise ResponseMode = "concise"

	// ResponseModeDetailed allows full step-by-step answers.
	ResponseModeDetailed ResponseMode = "detailed"
)

// IsValid returns true if the response mode is recognised.
func (m ResponseMode) IsValid() bool {
	switch m {
	case ResponseModeConcise, ResponseModeDetailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ResponseMode) String() string {
	return string(m)
}
