// Package model loads the pretrained inference artifacts and evaluates them.
//
// The offline pipeline exports three JSON documents: a Keras-style LSTM feature
// extractor, a native XGBoost JSON booster, and the fitted label encoder classes.
// Loaded models are immutable; every method is safe for concurrent use.
package model

import "errors"

// Embedding is the latent vector produced by the feature extractor
type Embedding []float64

// FeatureExtractor maps a (timesteps x features) sequence to an embedding
type FeatureExtractor interface {
	Extract(sequence [][]float64) (Embedding, error)
}

// Classifier maps an embedding to an encoded class value
type Classifier interface {
	Predict(features []float64) (float64, error)
}

// LabelDecoder maps an encoded class back to its name
type LabelDecoder interface {
	Decode(label int) (string, error)
}

var (
	// ErrArtifactMissing marks an artifact that was never provided
	ErrArtifactMissing = errors.New("artifact missing")
	// ErrShapeMismatch is returned when an input does not fit the model
	ErrShapeMismatch = errors.New("input shape mismatch")
)
