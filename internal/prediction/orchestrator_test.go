package prediction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"weather-predictor/internal/model"
	"weather-predictor/internal/types"
)

// Stub models for testing

type stubExtractor struct {
	mu     sync.Mutex
	inputs [][][]float64
	err    error
}

// Extract returns the sum of the sequence as a one-value embedding
func (s *stubExtractor) Extract(sequence [][]float64) (model.Embedding, error) {
	s.mu.Lock()
	s.inputs = append(s.inputs, sequence)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	total := 0.0
	for _, step := range sequence {
		total += step[0]
	}
	return model.Embedding{total}, nil
}

func (s *stubExtractor) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inputs)
}

// stubClassifier returns class 1 for embeddings above 50, class 0 otherwise
type stubClassifier struct {
	fixed *float64
	err   error
}

func (s *stubClassifier) Predict(features []float64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.fixed != nil {
		return *s.fixed, nil
	}
	if features[0] > 50 {
		return 1, nil
	}
	return 0, nil
}

func testBundle() (*model.Bundle, *stubExtractor) {
	extractor := &stubExtractor{}
	return model.NewBundle(extractor, &stubClassifier{}, model.NewLabelEncoder([]string{"sun", "rain"})), extractor
}

func fiveDays() []types.DailyForecast {
	return []types.DailyForecast{
		{Date: "2025-05-14", Features: types.NewDailyFeatureVector(0, 18.9, 11.3, 3.75)},
		{Date: "2025-05-15", Features: types.NewDailyFeatureVector(40.5, 16.2, 10.1, 5.5)},
		{Date: "2025-05-16", Features: types.NewDailyFeatureVector(1.2, 21, 12.4, 2.25)},
		{Date: "2025-05-17", Features: types.NewDailyFeatureVector(0, 23.4, 13, 1.5)},
		{Date: "2025-05-18", Features: types.NewDailyFeatureVector(3, 19.1, 12.2, 4)},
	}
}

func TestPredict(t *testing.T) {
	bundle, extractor := testBundle()

	records, err := Predict(context.Background(), fiveDays(), bundle)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("Predict() returned %d records, want 5", len(records))
	}
	for i, r := range records {
		if want := fmt.Sprintf("DAY %d", i+1); r.Day != want {
			t.Errorf("records[%d].Day = %q, want %q", i, r.Day, want)
		}
	}

	second := records[1]
	if second.Weather != "rain" {
		t.Errorf("records[1].Weather = %q, want %q", second.Weather, "rain")
	}
	if records[0].Weather != "sun" {
		t.Errorf("records[0].Weather = %q, want %q", records[0].Weather, "sun")
	}
	if second.Precipitation != 40.5 || second.TempMax != 16.2 || second.TempMin != 10.1 || second.Wind != 5.5 {
		t.Errorf("records[1] fields = %+v, want the input vector", second)
	}
	if second.Date != "2025-05-15" {
		t.Errorf("records[1].Date = %q, want %q", second.Date, "2025-05-15")
	}

	// each day is fed as four timesteps of one feature, in vector order
	first := extractor.inputs[0]
	want := [][]float64{{0}, {18.9}, {11.3}, {3.75}}
	if len(first) != len(want) {
		t.Fatalf("extractor got %d timesteps, want %d", len(first), len(want))
	}
	for i := range want {
		if len(first[i]) != 1 || first[i][0] != want[i][0] {
			t.Errorf("timestep %d = %v, want %v", i, first[i], want[i])
		}
	}
}

func TestPredict_DayCount(t *testing.T) {
	tests := []struct {
		name  string
		days  int
		want  int
		calls int
	}{
		{"extra days are ignored", 7, 5, 5},
		{"fewer days yield fewer records", 3, 3, 3},
		{"no days", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, extractor := testBundle()

			days := make([]types.DailyForecast, tt.days)
			for i := range days {
				days[i] = types.DailyForecast{Features: types.NewDailyFeatureVector(float64(i), 20, 10, 2)}
			}

			records, err := Predict(context.Background(), days, bundle)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("Predict() returned %d records, want %d", len(records), tt.want)
			}
			if extractor.calls() != tt.calls {
				t.Errorf("extractor called %d times, want %d", extractor.calls(), tt.calls)
			}
		})
	}
}

func TestPredict_Errors(t *testing.T) {
	outOfRange := 7.0
	boom := errors.New("boom")

	tests := []struct {
		name   string
		bundle *model.Bundle
		target error
	}{
		{
			name:   "extractor error",
			bundle: model.NewBundle(&stubExtractor{err: boom}, &stubClassifier{}, model.NewLabelEncoder([]string{"sun"})),
			target: boom,
		},
		{
			name:   "classifier error",
			bundle: model.NewBundle(&stubExtractor{}, &stubClassifier{err: boom}, model.NewLabelEncoder([]string{"sun"})),
			target: boom,
		},
		{
			name:   "label out of range",
			bundle: model.NewBundle(&stubExtractor{}, &stubClassifier{fixed: &outOfRange}, model.NewLabelEncoder([]string{"sun"})),
		},
		{
			name:   "missing model",
			bundle: model.NewBundle(&stubExtractor{}, nil, model.NewLabelEncoder([]string{"sun"})),
			target: ErrModelsNotLoaded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Predict(context.Background(), fiveDays(), tt.bundle)
			if !errors.Is(err, ErrInferenceFailed) {
				t.Fatalf("Predict() error = %v, want %v", err, ErrInferenceFailed)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Predict() error = %v, want it to wrap %v", err, tt.target)
			}
			if records != nil {
				t.Errorf("Predict() records = %v, want nil on error", records)
			}
		})
	}
}

func TestPredict_Concurrent(t *testing.T) {
	bundle, _ := testBundle()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := Predict(context.Background(), fiveDays(), bundle)
			if err == nil && len(records) != 5 {
				err = fmt.Errorf("got %d records", len(records))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Predict() error = %v", err)
		}
	}
}
