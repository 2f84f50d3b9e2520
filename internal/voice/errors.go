package voice

import "fmt"

// AnalysisError represents a failure while analyzing a user's voice.
type AnalysisError struct {
	Handle  string
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("voice analysis for @%s failed: %s: %v", e.Handle, e.Message, e.Cause)
	}
	return fmt.Sprintf("voice analysis for @%s failed: %s", e.Handle, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// ProfileStoreError represents a failure reading or writing a saved profile.
type ProfileStoreError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ProfileStoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile store %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile store %s: %s", e.Path, e.Message)
}

func (e *ProfileStoreError) Unwrap() error {
	return e.Cause
}
