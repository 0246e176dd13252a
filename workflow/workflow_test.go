package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/jakobos/10x-cards/dto"
)

func loadedState(t *testing.T, pairs ...[2]string) State {
	t.Helper()

	generated := make([]dto.FlashcardCandidate, 0, len(pairs))
	for _, p := range pairs {
		generated = append(generated, dto.FlashcardCandidate{Front: p[0], Back: p[1]})
	}

	s := Reduce(NewState(), GenerateStarted{})
	return Reduce(s, CandidatesLoaded{
		GenerationID: "2f1e9a40-0000-7000-8000-000000000001",
		Candidates:   NewCandidates(generated),
	})
}

func TestReduce_GenerateLifecycle(t *testing.T) {
	t.Parallel()

	s := Reduce(NewState(), GenerateStarted{})
	if s.Step != StepLoading {
		t.Fatalf("expected loading, got %s", s.Step)
	}

	s = Reduce(s, CandidatesLoaded{
		GenerationID: "gen-1",
		Candidates:   NewCandidates([]dto.FlashcardCandidate{{Front: "f", Back: "b"}}),
	})
	if s.Step != StepReview {
		t.Fatalf("expected review, got %s", s.Step)
	}
	if s.GenerationID != "gen-1" {
		t.Fatalf("generation id not stored")
	}
	if len(s.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(s.Candidates))
	}

	c := s.Candidates[0]
	if c.Status != StatusPending || c.IsEdited || c.LocalID == "" {
		t.Fatalf("candidate not materialized with pending status and local id: %+v", c)
	}
}

func TestReduce_GenerateFailed(t *testing.T) {
	t.Parallel()

	s := Reduce(Reduce(NewState(), GenerateStarted{}), GenerateFailed{Message: "boom"})
	if s.Step != StepError || s.Err != "boom" {
		t.Fatalf("expected error step with message, got %s %q", s.Step, s.Err)
	}
}

func TestReduce_AcceptIsIdempotent(t *testing.T) {
	t.Parallel()

	s := loadedState(t, [2]string{"f", "b"})
	id := s.Candidates[0].LocalID

	s = Reduce(s, CandidateAccepted{LocalID: id})
	s = Reduce(s, CandidateAccepted{LocalID: id})
	if s.Candidates[0].Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", s.Candidates[0].Status)
	}
	if s.Candidates[0].IsEdited {
		t.Fatalf("accept must not mark a candidate edited")
	}
}

func TestReduce_RejectKeepsCandidate(t *testing.T) {
	t.Parallel()

	s := loadedState(t, [2]string{"f1", "b1"}, [2]string{"f2", "b2"})
	id := s.Candidates[0].LocalID

	s = Reduce(s, CandidateRejected{LocalID: id})
	if len(s.Candidates) != 2 {
		t.Fatalf("reject must keep the candidate in the list")
	}
	if s.Candidates[0].Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", s.Candidates[0].Status)
	}
	if s.Candidates[1].Status != StatusPending {
		t.Fatalf("other candidates must be untouched")
	}
}

func TestReduce_EditSavedAcceptsEvenWhenRejected(t *testing.T) {
	t.Parallel()

	s := loadedState(t, [2]string{"f", "b"})
	id := s.Candidates[0].LocalID

	s = Reduce(s, CandidateRejected{LocalID: id})
	s = Reduce(s, EditOpened{LocalID: id})
	if s.EditingID != id {
		t.Fatalf("edit sub-state not opened")
	}

	s = Reduce(s, EditSaved{LocalID: id, Front: "nf", Back: "nb"})
	c := s.Candidates[0]
	if c.Front != "nf" || c.Back != "nb" {
		t.Fatalf("edit did not overwrite content: %+v", c)
	}
	if c.Status != StatusAccepted || !c.IsEdited {
		t.Fatalf("saved edit must accept and mark edited: %+v", c)
	}
	if s.EditingID != "" {
		t.Fatalf("edit sub-state must close on save")
	}
}

func TestReduce_EditOpenedUnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	s := loadedState(t, [2]string{"f", "b"})
	s = Reduce(s, EditOpened{LocalID: "nope"})
	if s.EditingID != "" {
		t.Fatalf("unknown id must not open the edit sub-state")
	}
}

func TestReduce_SubmitGuards(t *testing.T) {
	t.Parallel()

	// Nothing accepted: stay in review with a validation message.
	s := loadedState(t, [2]string{"f", "b"})
	s = Reduce(s, SubmitStarted{})
	if s.Step != StepReview {
		t.Fatalf("expected to stay in review, got %s", s.Step)
	}
	if s.Err == "" {
		t.Fatalf("expected a validation message")
	}

	// Missing generation id: error step.
	s = loadedState(t, [2]string{"f", "b"})
	s.GenerationID = ""
	s = Reduce(s, CandidateAccepted{LocalID: s.Candidates[0].LocalID})
	s = Reduce(s, SubmitStarted{})
	if s.Step != StepError {
		t.Fatalf("expected error step, got %s", s.Step)
	}
}

func TestReduce_SubmitSucceededResetsEverything(t *testing.T) {
	t.Parallel()

	s := loadedState(t, [2]string{"f", "b"})
	s = Reduce(s, CandidateAccepted{LocalID: s.Candidates[0].LocalID})
	s = Reduce(s, SubmitStarted{})
	if s.Step != StepSubmitting {
		t.Fatalf("expected submitting, got %s", s.Step)
	}

	s = Reduce(s, SubmitSucceeded{})
	if s.Step != StepInput || len(s.Candidates) != 0 || s.GenerationID != "" || s.Err != "" || s.EditingID != "" {
		t.Fatalf("success must reset fully to input: %+v", s)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	s := loadedState(t, [2]string{"f", "b"})
	id := s.Candidates[0].LocalID

	next := Reduce(s, CandidateAccepted{LocalID: id})
	if s.Candidates[0].Status != StatusPending {
		t.Fatalf("input state was mutated")
	}
	if next.Candidates[0].Status != StatusAccepted {
		t.Fatalf("returned state missing the transition")
	}
}

type fakeBackend struct {
	generateResp *dto.GenerateFlashcardsResponse
	generateErr  error
	submitErr    error

	submitted []dto.BatchCreateFlashcardsRequest
}

func (f *fakeBackend) GenerateCandidates(_ context.Context, _, _ string) (*dto.GenerateFlashcardsResponse, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.generateResp, nil
}

func (f *fakeBackend) SubmitFlashcards(_ context.Context, _ string, req dto.BatchCreateFlashcardsRequest) (*dto.BatchCreateFlashcardsResponse, error) {
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &dto.BatchCreateFlashcardsResponse{
		CreatedCount: len(req.Flashcards),
		GenerationID: req.GenerationID,
	}, nil
}

func TestController_FullWorkflow(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		generateResp: &dto.GenerateFlashcardsResponse{
			GenerationID: "gen-7",
			Candidates: []dto.FlashcardCandidate{
				{Front: "q1", Back: "a1"},
				{Front: "q2", Back: "a2"},
				{Front: "q3", Back: "a3"},
				{Front: "q4", Back: "a4"},
				{Front: "q5", Back: "a5"},
			},
		},
	}
	ctl := NewController("deck-1", backend)

	if err := ctl.Generate(context.Background(), "source text"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	s := ctl.State()
	if s.Step != StepReview || len(s.Candidates) != 5 {
		t.Fatalf("expected review with 5 candidates, got %s / %d", s.Step, len(s.Candidates))
	}

	// Accept two verbatim, edit one, reject one, leave one pending.
	ctl.Accept(s.Candidates[0].LocalID)
	ctl.Accept(s.Candidates[1].LocalID)
	ctl.SaveEdit(s.Candidates[2].LocalID, "q3 edited", "a3 edited")
	ctl.Reject(s.Candidates[3].LocalID)

	if err := ctl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(backend.submitted) != 1 {
		t.Fatalf("expected one batch request, got %d", len(backend.submitted))
	}
	req := backend.submitted[0]
	if req.GenerationID != "gen-7" {
		t.Fatalf("wrong generation id: %s", req.GenerationID)
	}
	if len(req.Flashcards) != 3 {
		t.Fatalf("expected 3 accepted flashcards, got %d", len(req.Flashcards))
	}
	if req.Flashcards[0].Source != "ai-full" || req.Flashcards[1].Source != "ai-full" {
		t.Fatalf("verbatim acceptances must be ai-full")
	}
	if req.Flashcards[2].Source != "ai-edited" || req.Flashcards[2].Front != "q3 edited" {
		t.Fatalf("edited acceptance must be ai-edited with new content: %+v", req.Flashcards[2])
	}

	if got := ctl.State(); got.Step != StepInput || len(got.Candidates) != 0 {
		t.Fatalf("successful submit must reset to input: %+v", got)
	}
}

func TestController_GenerateFailureMovesToError(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{generateErr: errors.New("upstream down")}
	ctl := NewController("deck-1", backend)

	if err := ctl.Generate(context.Background(), "text"); err == nil {
		t.Fatalf("expected generate error")
	}

	s := ctl.State()
	if s.Step != StepError || s.Err != "upstream down" {
		t.Fatalf("expected error state with message, got %s %q", s.Step, s.Err)
	}

	ctl.Reset()
	if got := ctl.State(); got.Step != StepInput || got.Err != "" {
		t.Fatalf("reset must return to a clean input state: %+v", got)
	}
}

func TestController_SubmitWithNothingAcceptedSkipsBackend(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		generateResp: &dto.GenerateFlashcardsResponse{
			GenerationID: "gen-1",
			Candidates:   []dto.FlashcardCandidate{{Front: "q", Back: "a"}},
		},
	}
	ctl := NewController("deck-1", backend)
	_ = ctl.Generate(context.Background(), "text")

	if err := ctl.Submit(context.Background()); err != nil {
		t.Fatalf("guarded submit must not error: %v", err)
	}
	if len(backend.submitted) != 0 {
		t.Fatalf("backend must not be called with nothing accepted")
	}
	if s := ctl.State(); s.Step != StepReview || s.Err == "" {
		t.Fatalf("expected review with validation message, got %s %q", s.Step, s.Err)
	}
}

func TestController_SubmitFailureMovesToError(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		generateResp: &dto.GenerateFlashcardsResponse{
			GenerationID: "gen-1",
			Candidates:   []dto.FlashcardCandidate{{Front: "q", Back: "a"}},
		},
		submitErr: errors.New("persistence failed"),
	}
	ctl := NewController("deck-1", backend)
	_ = ctl.Generate(context.Background(), "text")
	ctl.Accept(ctl.State().Candidates[0].LocalID)

	if err := ctl.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}
	if s := ctl.State(); s.Step != StepError || s.Err != "persistence failed" {
		t.Fatalf("expected error state, got %s %q", s.Step, s.Err)
	}
}

func TestNewCandidates_UniqueLocalIDs(t *testing.T) {
	t.Parallel()

	generated := make([]dto.FlashcardCandidate, 10)
	candidates := NewCandidates(generated)

	seen := make(map[string]bool)
	for _, c := range candidates {
		if c.LocalID == "" || seen[c.LocalID] {
			t.Fatalf("local ids must be unique and non-empty")
		}
		seen[c.LocalID] = true
	}
}
