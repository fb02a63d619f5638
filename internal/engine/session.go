package engine

import (
	"premium-estimator/internal/inquiry"
	"premium-estimator/internal/model"
)

// Session is the state one user accumulates while using the page: the
// inquiry code, kept across recalculations, and the last result.
type Session struct {
	inquiryID string
	last      *model.CalculationResult
}

func NewSession() *Session {
	return &Session{}
}

// ResumeSession continues a session whose inquiry code the client kept.
// Codes that do not look like ours are dropped and a new one is issued on
// the next calculation.
func ResumeSession(inquiryID string) *Session {
	if !inquiry.Valid(inquiryID) {
		return &Session{}
	}
	return &Session{inquiryID: inquiryID}
}

func (s *Session) InquiryID() string {
	return s.inquiryID
}

// Last returns the most recent successful calculation.
func (s *Session) Last() (model.CalculationResult, bool) {
	if s.last == nil {
		return model.CalculationResult{}, false
	}
	return *s.last, true
}

// Regenerate discards the inquiry code and the result tied to it.
func (s *Session) Regenerate() {
	s.inquiryID = ""
	s.last = nil
}
