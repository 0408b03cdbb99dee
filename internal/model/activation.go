package model

import (
	"fmt"
	"math"
)

type activationFunc func(float64) float64

func linear(x float64) float64 { return x }

func relu(x float64) float64 { return math.Max(0, x) }

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// hardSigmoid follows the tf.keras 2.x definition
func hardSigmoid(x float64) float64 { return math.Max(0, math.Min(1, 0.2*x+0.5)) }

func lookupActivation(name string) (activationFunc, error) {
	switch name {
	case "", "linear":
		return linear, nil
	case "relu":
		return relu, nil
	case "tanh":
		return math.Tanh, nil
	case "sigmoid":
		return sigmoid, nil
	case "hard_sigmoid":
		return hardSigmoid, nil
	default:
		return nil, fmt.Errorf("unsupported activation %q", name)
	}
}

// softmax is applied in place
func softmax(values []float64) {
	if len(values) == 0 {
		return
	}
	maxValue := values[0]
	for _, v := range values {
		maxValue = math.Max(maxValue, v)
	}
	total := 0.0
	for i, v := range values {
		values[i] = math.Exp(v - maxValue)
		total += values[i]
	}
	for i := range values {
		values[i] /= total
	}
}
