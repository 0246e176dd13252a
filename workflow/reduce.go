package workflow

// Event is the closed set of transitions. Reduce is the only mutation
// path for State.
type Event interface {
	isEvent()
}

type GenerateStarted struct{}

type CandidatesLoaded struct {
	GenerationID string
	Candidates   []Candidate
}

type GenerateFailed struct {
	Message string
}

type CandidateAccepted struct {
	LocalID string
}

type CandidateRejected struct {
	LocalID string
}

type EditOpened struct {
	LocalID string
}

type EditClosed struct{}

type EditSaved struct {
	LocalID string
	Front   string
	Back    string
}

type SubmitStarted struct{}

type SubmitSucceeded struct{}

type SubmitFailed struct {
	Message string
}

type Reset struct{}

func (GenerateStarted) isEvent()   {}
func (CandidatesLoaded) isEvent()  {}
func (GenerateFailed) isEvent()    {}
func (CandidateAccepted) isEvent() {}
func (CandidateRejected) isEvent() {}
func (EditOpened) isEvent()        {}
func (EditClosed) isEvent()        {}
func (EditSaved) isEvent()         {}
func (SubmitStarted) isEvent()     {}
func (SubmitSucceeded) isEvent()   {}
func (SubmitFailed) isEvent()      {}
func (Reset) isEvent()             {}

const (
	errMissingGenerationID = "generation id is missing, start over from the text input"
	errNoAcceptedCards     = "accept at least one flashcard before saving"
)

// Reduce applies an event and returns the next state. The input state is
// never mutated; candidate slices are copied before any element changes.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case GenerateStarted:
		s.Step = StepLoading
		s.Err = ""
		return s

	case CandidatesLoaded:
		s.Step = StepReview
		s.GenerationID = ev.GenerationID
		s.Candidates = ev.Candidates
		return s

	case GenerateFailed:
		s.Step = StepError
		s.Err = ev.Message
		return s

	case CandidateAccepted:
		s.Candidates = setStatus(s.Candidates, ev.LocalID, StatusAccepted)
		return s

	case CandidateRejected:
		s.Candidates = setStatus(s.Candidates, ev.LocalID, StatusRejected)
		return s

	case EditOpened:
		for _, c := range s.Candidates {
			if c.LocalID == ev.LocalID {
				s.EditingID = ev.LocalID
				break
			}
		}
		return s

	case EditClosed:
		s.EditingID = ""
		return s

	case EditSaved:
		// An edited candidate is accepted regardless of its prior status.
		next := make([]Candidate, len(s.Candidates))
		copy(next, s.Candidates)
		for i := range next {
			if next[i].LocalID == ev.LocalID {
				next[i].Front = ev.Front
				next[i].Back = ev.Back
				next[i].IsEdited = true
				next[i].Status = StatusAccepted
			}
		}
		s.Candidates = next
		s.EditingID = ""
		return s

	case SubmitStarted:
		if s.GenerationID == "" {
			s.Step = StepError
			s.Err = errMissingGenerationID
			return s
		}
		if len(s.AcceptedCandidates()) == 0 {
			s.Err = errNoAcceptedCards
			return s
		}
		s.Step = StepSubmitting
		s.Err = ""
		return s

	case SubmitSucceeded:
		return NewState()

	case SubmitFailed:
		s.Step = StepError
		s.Err = ev.Message
		return s

	case Reset:
		return NewState()
	}

	return s
}

func setStatus(candidates []Candidate, localID string, status Status) []Candidate {
	next := make([]Candidate, len(candidates))
	copy(next, candidates)
	for i := range next {
		if next[i].LocalID == localID {
			next[i].Status = status
		}
	}
	return next
}
