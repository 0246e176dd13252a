package dto

import (
	"strings"
	"testing"
)

const validDeckID = "9f3b2c1a-5d6e-4f70-8a9b-0c1d2e3f4a5b"

func TestGenerateFlashcardsRequest_SourceTextBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"below minimum", 999, true},
		{"at minimum", 1000, false},
		{"at maximum", 10000, false},
		{"above maximum", 10001, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := GenerateFlashcardsRequest{
				SourceText: strings.Repeat("a", tc.length),
				DeckID:     validDeckID,
			}
			err := req.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation failure for length %d", tc.length)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation failure for length %d: %v", tc.length, err)
			}
		})
	}
}

func TestGenerateFlashcardsRequest_DeckID(t *testing.T) {
	t.Parallel()

	req := GenerateFlashcardsRequest{
		SourceText: strings.Repeat("a", 1000),
		DeckID:     "not-a-uuid",
	}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected failure for malformed deck id")
	}

	req.DeckID = ""
	if err := req.Validate(); err == nil {
		t.Fatalf("expected failure for missing deck id")
	}
}

func TestBatchCreateFlashcardsRequest_Validation(t *testing.T) {
	t.Parallel()

	valid := BatchCreateFlashcardsRequest{
		GenerationID: validDeckID,
		Flashcards: []BatchFlashcardItem{
			{Front: "q", Back: "a", Source: "ai-full"},
			{Front: "q2", Back: "a2", Source: "ai-edited"},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	empty := valid
	empty.Flashcards = nil
	if err := empty.Validate(); err == nil {
		t.Fatalf("expected failure for empty batch")
	}

	tooMany := valid
	tooMany.Flashcards = make([]BatchFlashcardItem, 51)
	for i := range tooMany.Flashcards {
		tooMany.Flashcards[i] = BatchFlashcardItem{Front: "q", Back: "a", Source: "ai-full"}
	}
	if err := tooMany.Validate(); err == nil {
		t.Fatalf("expected failure for a batch over 50")
	}

	badSource := valid
	badSource.Flashcards = []BatchFlashcardItem{{Front: "q", Back: "a", Source: "manual"}}
	if err := badSource.Validate(); err == nil {
		t.Fatalf("batch commits only accept ai provenance")
	}

	longFront := valid
	longFront.Flashcards = []BatchFlashcardItem{{Front: strings.Repeat("f", 201), Back: "a", Source: "ai-full"}}
	if err := longFront.Validate(); err == nil {
		t.Fatalf("expected failure for a front over 200 chars")
	}

	longBack := valid
	longBack.Flashcards = []BatchFlashcardItem{{Front: "q", Back: strings.Repeat("b", 501), Source: "ai-full"}}
	if err := longBack.Validate(); err == nil {
		t.Fatalf("expected failure for a back over 500 chars")
	}
}

func TestRegisterRequest_PasswordStrength(t *testing.T) {
	t.Parallel()

	base := RegisterRequest{
		Email:    "user@example.com",
		Username: "learner01",
	}

	weak := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, password := range weak {
		req := base
		req.Password = password
		if err := req.Validate(); err == nil {
			t.Fatalf("expected weak password %q to be rejected", password)
		}
	}

	req := base
	req.Password = "Sufficient1"
	if err := req.Validate(); err != nil {
		t.Fatalf("strong password rejected: %v", err)
	}
}
