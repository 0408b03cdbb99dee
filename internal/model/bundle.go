package model

import (
	"fmt"
	"log/slog"

	"weather-predictor/internal/observability"
)

// Artifact names used in logs, metrics and health output
const (
	ArtifactFeatureExtractor = "feature_extractor"
	ArtifactClassifier       = "classifier"
	ArtifactLabelEncoder     = "label_encoder"
)

// Paths locates the three artifacts on disk
type Paths struct {
	FeatureExtractor string
	Classifier       string
	LabelEncoder     string
}

// LoadResult records the outcome of loading one artifact
type LoadResult struct {
	Artifact string
	Path     string
	Err      error
}

// Loaded reports whether the artifact is usable
func (r LoadResult) Loaded() bool {
	return r.Err == nil
}

// Bundle groups the three models. Any of them may be nil when its artifact
// failed to load; the service keeps running and reports itself degraded.
type Bundle struct {
	FeatureExtractor FeatureExtractor
	Classifier       Classifier
	LabelDecoder     LabelDecoder

	results []LoadResult
}

// NewBundle assembles a bundle from already constructed models
func NewBundle(extractor FeatureExtractor, classifier Classifier, decoder LabelDecoder) *Bundle {
	return &Bundle{
		FeatureExtractor: extractor,
		Classifier:       classifier,
		LabelDecoder:     decoder,
	}
}

// Load reads every artifact independently. It never fails as a whole: each
// failure is logged and leaves the corresponding slot empty.
func Load(paths Paths, logger *slog.Logger) *Bundle {
	logger = logger.With("component", "model-loader")
	b := &Bundle{}

	extractor, err := LoadFeatureExtractor(paths.FeatureExtractor)
	b.record(logger, ArtifactFeatureExtractor, paths.FeatureExtractor, err)
	if err == nil {
		b.FeatureExtractor = extractor
	}

	booster, err := LoadClassifier(paths.Classifier)
	b.record(logger, ArtifactClassifier, paths.Classifier, err)
	if err == nil {
		b.Classifier = booster
	}

	encoder, err := LoadLabelEncoder(paths.LabelEncoder)
	b.record(logger, ArtifactLabelEncoder, paths.LabelEncoder, err)
	if err == nil {
		b.LabelDecoder = encoder
	}

	if extractor != nil && booster != nil && extractor.OutputSize() != booster.NumFeature() {
		logger.Warn("feature extractor output does not match classifier input",
			"embedding_size", extractor.OutputSize(),
			"num_feature", booster.NumFeature(),
		)
	}
	if booster != nil && encoder != nil && booster.NumClass() > len(encoder.classes) {
		logger.Warn("classifier has more classes than the label encoder",
			"num_class", booster.NumClass(),
			"labels", len(encoder.classes),
		)
	}

	return b
}

func (b *Bundle) record(logger *slog.Logger, artifact, path string, err error) {
	b.results = append(b.results, LoadResult{Artifact: artifact, Path: path, Err: err})

	gauge := observability.ModelArtifactLoaded.WithLabelValues(artifact)
	if err != nil {
		gauge.Set(0)
		logger.Error("failed to load model artifact",
			"artifact", artifact,
			"path", path,
			"error", err,
		)
		return
	}
	gauge.Set(1)
	logger.Info("loaded model artifact", "artifact", artifact, "path", path)
}

// Ready reports whether all three models are present
func (b *Bundle) Ready() bool {
	return b != nil && b.FeatureExtractor != nil && b.Classifier != nil && b.LabelDecoder != nil
}

// Results returns the per-artifact load outcomes, in load order
func (b *Bundle) Results() []LoadResult {
	if b == nil {
		return nil
	}
	return append([]LoadResult(nil), b.results...)
}

// Missing lists the artifacts that are not available
func (b *Bundle) Missing() []string {
	if b == nil {
		return []string{ArtifactFeatureExtractor, ArtifactClassifier, ArtifactLabelEncoder}
	}
	var missing []string
	if b.FeatureExtractor == nil {
		missing = append(missing, ArtifactFeatureExtractor)
	}
	if b.Classifier == nil {
		missing = append(missing, ArtifactClassifier)
	}
	if b.LabelDecoder == nil {
		missing = append(missing, ArtifactLabelEncoder)
	}
	return missing
}

// String summarizes the bundle state for logs
func (b *Bundle) String() string {
	if b.Ready() {
		return "ready"
	}
	return fmt.Sprintf("degraded (missing %v)", b.Missing())
}
