package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/hotelagent/internal/models"
)

type fakeCompleter struct {
	reply string
	err   error
	got   models.CompletionRequest
	calls int
}

func (f *fakeCompleter) Setup() error { return nil }

func (f *fakeCompleter) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	f.calls++
	f.got = req
	return f.reply, f.err
}

func TestModelExtractor(t *testing.T) {
	t.Run("it should parse fenced json", func(t *testing.T) {
		fc := &fakeCompleter{reply: "```json\n{\"location\": \"Paris\", \"checkin\": \"2025-06-01\", \"checkout\": \"2025-06-03\", \"budget\": 200}\n```"}
		got, err := NewModelExtractor(fc, "extract-dep").Extract(context.Background(), "Paris in june under $200")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got.Location, "Paris")
		testboil.FailTestIfDiff(t, got.Checkin, "2025-06-01")
		testboil.FailTestIfDiff(t, got.Checkout, "2025-06-03")
		assertBudget(t, got.Budget, ptr(200))
		testboil.FailTestIfDiff(t, len(got.Amenities), 0)
	})

	t.Run("it should send query with low temperature to the configured deployment", func(t *testing.T) {
		fc := &fakeCompleter{reply: `{"location": "Oslo", "budget": null}`}
		_, err := NewModelExtractor(fc, "extract-dep").Extract(context.Background(), "hotel in Oslo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, fc.calls, 1)
		testboil.FailTestIfDiff(t, fc.got.Deployment, "extract-dep")
		testboil.FailTestIfDiff(t, fc.got.Temperature, extractTemperature)
		last := fc.got.Messages[len(fc.got.Messages)-1]
		testboil.FailTestIfDiff(t, last.Role, "user")
		testboil.FailTestIfDiff(t, last.Content, "hotel in Oslo")
	})

	t.Run("null budget is absent", func(t *testing.T) {
		fc := &fakeCompleter{reply: `{"location": "Oslo", "checkin": null, "checkout": null, "budget": null}`}
		got, err := NewModelExtractor(fc, "d").Extract(context.Background(), "q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Budget != nil {
			t.Fatalf("expected absent budget, got %v", *got.Budget)
		}
		testboil.FailTestIfDiff(t, got.Checkin, "")
	})

	t.Run("invalid json is an extraction failure with raw text", func(t *testing.T) {
		raw := "Sure! The location is Paris."
		fc := &fakeCompleter{reply: raw}
		_, err := NewModelExtractor(fc, "d").Extract(context.Background(), "q")
		var exErr *Error
		if !errors.As(err, &exErr) {
			t.Fatalf("expected *Error, got: %v", err)
		}
		testboil.FailTestIfDiff(t, exErr.Raw, raw)
		testboil.FailTestIfDiff(t, isExtractionFailure(err), true)
	})

	t.Run("missing location is an extraction failure", func(t *testing.T) {
		fc := &fakeCompleter{reply: `{"location": "", "budget": 100}`}
		_, err := NewModelExtractor(fc, "d").Extract(context.Background(), "q")
		if !errors.Is(err, ErrNoLocation) {
			t.Fatalf("expected ErrNoLocation, got: %v", err)
		}
	})

	t.Run("negative budget is an extraction failure", func(t *testing.T) {
		fc := &fakeCompleter{reply: `{"location": "Oslo", "budget": -5}`}
		_, err := NewModelExtractor(fc, "d").Extract(context.Background(), "q")
		testboil.FailTestIfDiff(t, isExtractionFailure(err), true)
	})

	t.Run("completion failure is not an extraction failure", func(t *testing.T) {
		fc := &fakeCompleter{err: errors.New("network down")}
		_, err := NewModelExtractor(fc, "d").Extract(context.Background(), "q")
		if err == nil {
			t.Fatal("expected error")
		}
		testboil.FailTestIfDiff(t, isExtractionFailure(err), false)
		testboil.FailTestIfDiff(t, fc.calls, 1)
	})

	t.Run("amenities are normalized", func(t *testing.T) {
		fc := &fakeCompleter{reply: `{"location": "Nice", "budget": null, "amenities": ["Spa", "spa", "Gym"]}`}
		got, err := NewModelExtractor(fc, "d").Extract(context.Background(), "q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, len(got.Amenities), 2)
		testboil.FailTestIfDiff(t, got.Amenities[0], "spa")
		testboil.FailTestIfDiff(t, got.Amenities[1], "gym")
	})
}

func TestNew(t *testing.T) {
	if _, err := New(Pattern, nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New("", nil, ""); err != nil {
		t.Fatalf("expected empty kind to default to pattern, got: %v", err)
	}
	if _, err := New(Model, nil, ""); err == nil {
		t.Fatal("expected error for model extractor without completer")
	}
	if _, err := New(Model, &fakeCompleter{}, "d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New("telepathy", nil, ""); err == nil {
		t.Fatal("expected error on unknown kind")
	}
}

func isExtractionFailure(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

func TestModelExtractorUnknownLocation(t *testing.T) {
	raw := `{"location": "Unknown", "budget": 150}`
	fc := &fakeCompleter{reply: raw}
	_, err := NewModelExtractor(fc, "d").Extract(context.Background(), "somewhere nice please")
	if !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got: %v", err)
	}
	var exErr *Error
	if !errors.As(err, &exErr) {
		t.Fatalf("expected *Error, got: %v", err)
	}
	testboil.FailTestIfDiff(t, exErr.Raw, raw)
}

func TestParseModelOutputTrailingProse(t *testing.T) {
	raw := "```json\n{\"location\": \"Lisbon\", \"budget\": 90}\n```\nLet me know if you need anything else!"
	got, err := ParseModelOutput(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got.Location, "Lisbon")
	if got.Budget == nil || *got.Budget != 90 {
		t.Fatalf("expected budget 90, got: %v", got.Budget)
	}
}
