package model

import (
	"encoding/json"
	"fmt"
	"os"
)

const schemaLabelEncoder = "label_encoder.schema.json"

// LabelEncoder holds the classes of a fitted label encoder in encoded order
type LabelEncoder struct {
	classes []string
}

// NewLabelEncoder builds an encoder from its classes
func NewLabelEncoder(classes []string) *LabelEncoder {
	return &LabelEncoder{classes: append([]string(nil), classes...)}
}

// LoadLabelEncoder reads {"classes": [...]}
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label encoder: %w", err)
	}
	if err := validateDocument(schemaLabelEncoder, data); err != nil {
		return nil, err
	}

	var doc struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode label encoder: %w", err)
	}
	return NewLabelEncoder(doc.Classes), nil
}

// Decode maps an encoded label back to its class name
func (e *LabelEncoder) Decode(label int) (string, error) {
	if label < 0 || label >= len(e.classes) {
		return "", fmt.Errorf("label %d out of range [0, %d)", label, len(e.classes))
	}
	return e.classes[label], nil
}

// Classes returns a copy of the known class names
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}
