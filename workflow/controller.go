package workflow

import (
	"context"
	"sync"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/shared"
)

// Backend is the API surface the workflow needs. Client implements it
// over HTTP; tests substitute fakes.
type Backend interface {
	GenerateCandidates(ctx context.Context, deckID, sourceText string) (*dto.GenerateFlashcardsResponse, error)
	SubmitFlashcards(ctx context.Context, deckID string, req dto.BatchCreateFlashcardsRequest) (*dto.BatchCreateFlashcardsResponse, error)
}

// Controller owns a workflow for one deck. All methods are safe for
// concurrent use; the lock is released around backend calls so State
// stays readable while a request is in flight.
type Controller struct {
	deckID  string
	backend Backend

	mu    sync.Mutex
	state State
}

func NewController(deckID string, backend Backend) *Controller {
	return &Controller{
		deckID:  deckID,
		backend: backend,
		state:   NewState(),
	}
}

// State returns a snapshot; the candidate slice is copied so callers
// cannot alias internal state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Candidates = make([]Candidate, len(c.state.Candidates))
	copy(s.Candidates, c.state.Candidates)
	return s
}

func (c *Controller) apply(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Reduce(c.state, e)
	return c.state
}

// Generate requests candidates for the source text and moves the
// workflow to review on success, error otherwise.
func (c *Controller) Generate(ctx context.Context, sourceText string) error {
	c.apply(GenerateStarted{})

	resp, err := c.backend.GenerateCandidates(ctx, c.deckID, sourceText)
	if err != nil {
		c.apply(GenerateFailed{Message: errorMessage(err, "flashcard generation failed")})
		return err
	}

	c.apply(CandidatesLoaded{
		GenerationID: resp.GenerationID,
		Candidates:   NewCandidates(resp.Candidates),
	})
	return nil
}

func (c *Controller) Accept(localID string) {
	c.apply(CandidateAccepted{LocalID: localID})
}

func (c *Controller) Reject(localID string) {
	c.apply(CandidateRejected{LocalID: localID})
}

func (c *Controller) OpenEdit(localID string) {
	c.apply(EditOpened{LocalID: localID})
}

func (c *Controller) CloseEdit() {
	c.apply(EditClosed{})
}

func (c *Controller) SaveEdit(localID, front, back string) {
	c.apply(EditSaved{LocalID: localID, Front: front, Back: back})
}

// Submit commits the accepted candidates. When validation keeps the
// workflow in review (nothing accepted) or sends it to error (missing
// generation id), no backend call is made and Submit returns nil; the
// outcome is readable from State.
func (c *Controller) Submit(ctx context.Context) error {
	next := c.apply(SubmitStarted{})
	if next.Step != StepSubmitting {
		return nil
	}

	req := dto.BatchCreateFlashcardsRequest{
		GenerationID: next.GenerationID,
		Flashcards:   batchItems(next.AcceptedCandidates()),
	}

	if _, err := c.backend.SubmitFlashcards(ctx, c.deckID, req); err != nil {
		c.apply(SubmitFailed{Message: errorMessage(err, "saving flashcards failed")})
		return err
	}

	c.apply(SubmitSucceeded{})
	return nil
}

func (c *Controller) Reset() {
	c.apply(Reset{})
}

func batchItems(accepted []Candidate) []dto.BatchFlashcardItem {
	items := make([]dto.BatchFlashcardItem, 0, len(accepted))
	for _, cand := range accepted {
		source := shared.SourceAIFull
		if cand.IsEdited {
			source = shared.SourceAIEdited
		}
		items = append(items, dto.BatchFlashcardItem{
			Front:  cand.Front,
			Back:   cand.Back,
			Source: source,
		})
	}
	return items
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
