package prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"weather-predictor/internal/model"
	"weather-predictor/internal/observability"
	"weather-predictor/internal/types"
)

// MaxDays caps the number of records produced per call
const MaxDays = 5

// Inference stages, used as metric labels
const (
	stageExtract  = "extract"
	stageClassify = "classify"
	stageDecode   = "decode"
)

// ErrInferenceFailed wraps any model error raised while predicting
var ErrInferenceFailed = errors.New("inference failed")

// Predict runs the two-stage model over at most MaxDays daily vectors and
// returns one record per day, labelled "DAY 1" onwards. The first model error
// aborts the whole call.
func Predict(ctx context.Context, days []types.DailyForecast, bundle *model.Bundle) ([]types.PredictionRecord, error) {
	if !bundle.Ready() {
		return nil, fmt.Errorf("%w: %w", ErrInferenceFailed, ErrModelsNotLoaded)
	}
	if len(days) > MaxDays {
		days = days[:MaxDays]
	}

	_, span := observability.Tracer().Start(ctx, "prediction.infer")
	defer span.End()
	span.SetAttributes(attribute.Int("prediction.days", len(days)))

	records := make([]types.PredictionRecord, 0, len(days))
	for i, day := range days {
		weather, err := classifyDay(day.Features, bundle)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "inference failed")
			return nil, fmt.Errorf("%w: day %d: %w", ErrInferenceFailed, i+1, err)
		}

		records = append(records, types.PredictionRecord{
			Day:           fmt.Sprintf("DAY %d", i+1),
			Weather:       weather,
			Precipitation: day.Features.Precipitation(),
			TempMin:       day.Features.TempMin(),
			TempMax:       day.Features.TempMax(),
			Wind:          day.Features.Wind(),
			Date:          day.Date,
		})
	}

	return records, nil
}

// classifyDay feeds the vector to the extractor as a sequence of four
// single-feature timesteps
func classifyDay(features types.DailyFeatureVector, bundle *model.Bundle) (string, error) {
	sequence := make([][]float64, len(features))
	for i, v := range features {
		sequence[i] = []float64{v}
	}

	start := time.Now()
	embedding, err := bundle.FeatureExtractor.Extract(sequence)
	observeStage(stageExtract, start)
	if err != nil {
		return "", fmt.Errorf("feature extraction: %w", err)
	}

	start = time.Now()
	class, err := bundle.Classifier.Predict(embedding)
	observeStage(stageClassify, start)
	if err != nil {
		return "", fmt.Errorf("classification: %w", err)
	}

	start = time.Now()
	label, err := bundle.LabelDecoder.Decode(int(class))
	observeStage(stageDecode, start)
	if err != nil {
		return "", fmt.Errorf("label decoding: %w", err)
	}

	return label, nil
}

func observeStage(stage string, start time.Time) {
	observability.InferenceDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
