// Package workflow drives the candidate review lifecycle between a
// generation request and the final batch commit. It carries no UI or
// transport dependency: all state lives in a State value mutated only
// through Reduce, a Controller sequences the calls, and a Backend
// implementation supplies the API.
package workflow

import (
	"github.com/google/uuid"

	"github.com/jakobos/10x-cards/dto"
)

type Step string

const (
	StepInput      Step = "input"
	StepLoading    Step = "loading"
	StepReview     Step = "review"
	StepSubmitting Step = "submitting"
	StepError      Step = "error"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Candidate is one generated card under review. LocalID identifies it
// within this workflow only; it never reaches the server.
type Candidate struct {
	LocalID  string
	Front    string
	Back     string
	Status   Status
	IsEdited bool
}

// State is the whole workflow at a point in time. EditingID holds the
// LocalID of the candidate open for editing, empty when none is.
type State struct {
	Step         Step
	Candidates   []Candidate
	GenerationID string
	Err          string
	EditingID    string
}

func NewState() State {
	return State{Step: StepInput}
}

// AcceptedCandidates returns the candidates that would be committed on
// submit, in review order.
func (s State) AcceptedCandidates() []Candidate {
	var accepted []Candidate
	for _, c := range s.Candidates {
		if c.Status == StatusAccepted {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// NewCandidates assigns each generated pair a fresh local id and the
// pending status.
func NewCandidates(generated []dto.FlashcardCandidate) []Candidate {
	candidates := make([]Candidate, 0, len(generated))
	for _, g := range generated {
		candidates = append(candidates, Candidate{
			LocalID: uuid.NewString(),
			Front:   g.Front,
			Back:    g.Back,
			Status:  StatusPending,
		})
	}
	return candidates
}
