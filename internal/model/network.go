package model

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

const schemaFeatureExtractor = "feature_extractor.schema.json"

// networkSpec is the exported form of a Keras Sequential model.
// Weight layouts follow Keras: kernel is (input_dim, units) for Dense and
// (input_dim, 4*units) for LSTM with gates ordered i, f, c, o.
type networkSpec struct {
	InputShape []int       `json:"input_shape"`
	Layers     []layerSpec `json:"layers"`
}

type layerSpec struct {
	Type                string      `json:"type"`
	Name                string      `json:"name,omitempty"`
	Units               int         `json:"units"`
	Activation          string      `json:"activation,omitempty"`
	RecurrentActivation string      `json:"recurrent_activation,omitempty"`
	ReturnSequences     bool        `json:"return_sequences,omitempty"`
	Kernel              [][]float64 `json:"kernel,omitempty"`
	RecurrentKernel     [][]float64 `json:"recurrent_kernel,omitempty"`
	Bias                []float64   `json:"bias,omitempty"`
}

type layer interface {
	forward(sequence []*mat.VecDense) []*mat.VecDense
}

// Network is a feed-forward stack of LSTM and Dense layers
type Network struct {
	timesteps int
	features  int
	layers    []layer
	outputLen int
}

// LoadFeatureExtractor reads and validates an exported feature extractor
func LoadFeatureExtractor(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature extractor: %w", err)
	}
	if err := validateDocument(schemaFeatureExtractor, data); err != nil {
		return nil, err
	}

	var spec networkSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode feature extractor: %w", err)
	}
	return newNetwork(spec)
}

func newNetwork(spec networkSpec) (*Network, error) {
	if len(spec.InputShape) != 2 || spec.InputShape[0] <= 0 || spec.InputShape[1] <= 0 {
		return nil, fmt.Errorf("input_shape must be [timesteps, features], got %v", spec.InputShape)
	}

	n := &Network{
		timesteps: spec.InputShape[0],
		features:  spec.InputShape[1],
	}

	width, steps := n.features, n.timesteps
	for i, ls := range spec.Layers {
		var (
			l   layer
			err error
		)
		switch ls.Type {
		case "lstm":
			l, err = newLSTMLayer(ls, width)
			if err == nil {
				width = ls.Units
				if !ls.ReturnSequences {
					steps = 1
				}
			}
		case "dense":
			l, err = newDenseLayer(ls, width)
			if err == nil {
				width = ls.Units
			}
		case "dropout":
			// inference no-op
			continue
		default:
			err = fmt.Errorf("unsupported layer type %q", ls.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, ls.Name, err)
		}
		n.layers = append(n.layers, l)
	}

	if len(n.layers) == 0 {
		return nil, fmt.Errorf("feature extractor has no layers")
	}

	n.outputLen = width * steps
	return n, nil
}

// InputShape returns (timesteps, features)
func (n *Network) InputShape() (int, int) {
	return n.timesteps, n.features
}

// OutputSize is the length of every embedding the network produces
func (n *Network) OutputSize() int {
	return n.outputLen
}

// Extract runs the forward pass. Output timesteps are concatenated in order.
func (n *Network) Extract(sequence [][]float64) (Embedding, error) {
	if len(sequence) != n.timesteps {
		return nil, fmt.Errorf("%w: got %d timesteps, want %d", ErrShapeMismatch, len(sequence), n.timesteps)
	}

	current := make([]*mat.VecDense, len(sequence))
	for t, step := range sequence {
		if len(step) != n.features {
			return nil, fmt.Errorf("%w: timestep %d has %d features, want %d", ErrShapeMismatch, t, len(step), n.features)
		}
		current[t] = mat.NewVecDense(n.features, append([]float64(nil), step...))
	}

	for _, l := range n.layers {
		current = l.forward(current)
	}

	out := make(Embedding, 0, n.outputLen)
	for _, v := range current {
		out = append(out, v.RawVector().Data...)
	}
	return out, nil
}

// toDense converts a row-major nested slice, checking its shape
func toDense(name string, rows [][]float64, wantRows, wantCols int) (*mat.Dense, error) {
	if len(rows) != wantRows {
		return nil, fmt.Errorf("%s has %d rows, want %d", name, len(rows), wantRows)
	}
	flat := make([]float64, 0, wantRows*wantCols)
	for i, row := range rows {
		if len(row) != wantCols {
			return nil, fmt.Errorf("%s row %d has %d columns, want %d", name, i, len(row), wantCols)
		}
		flat = append(flat, row...)
	}
	return mat.NewDense(wantRows, wantCols, flat), nil
}

func toVec(name string, values []float64, want int) (*mat.VecDense, error) {
	if len(values) != want {
		return nil, fmt.Errorf("%s has %d values, want %d", name, len(values), want)
	}
	return mat.NewVecDense(want, append([]float64(nil), values...)), nil
}

type lstmLayer struct {
	units               int
	kernel              *mat.Dense
	recurrentKernel     *mat.Dense
	bias                *mat.VecDense
	activation          activationFunc
	recurrentActivation activationFunc
	returnSequences     bool
}

func newLSTMLayer(spec layerSpec, inputDim int) (*lstmLayer, error) {
	if spec.Units <= 0 {
		return nil, fmt.Errorf("units must be positive, got %d", spec.Units)
	}
	gates := 4 * spec.Units

	activationName := spec.Activation
	if activationName == "" {
		activationName = "tanh"
	}
	recurrentName := spec.RecurrentActivation
	if recurrentName == "" {
		recurrentName = "sigmoid"
	}

	activation, err := lookupActivation(activationName)
	if err != nil {
		return nil, err
	}
	recurrentActivation, err := lookupActivation(recurrentName)
	if err != nil {
		return nil, err
	}

	kernel, err := toDense("kernel", spec.Kernel, inputDim, gates)
	if err != nil {
		return nil, err
	}
	recurrentKernel, err := toDense("recurrent_kernel", spec.RecurrentKernel, spec.Units, gates)
	if err != nil {
		return nil, err
	}
	bias, err := toVec("bias", spec.Bias, gates)
	if err != nil {
		return nil, err
	}

	return &lstmLayer{
		units:               spec.Units,
		kernel:              kernel,
		recurrentKernel:     recurrentKernel,
		bias:                bias,
		activation:          activation,
		recurrentActivation: recurrentActivation,
		returnSequences:     spec.ReturnSequences,
	}, nil
}

func (l *lstmLayer) forward(sequence []*mat.VecDense) []*mat.VecDense {
	u := l.units
	h := mat.NewVecDense(u, nil)
	c := make([]float64, u)
	z := mat.NewVecDense(4*u, nil)
	recurrent := mat.NewVecDense(4*u, nil)

	var out []*mat.VecDense
	for _, x := range sequence {
		z.MulVec(l.kernel.T(), x)
		recurrent.MulVec(l.recurrentKernel.T(), h)
		z.AddVec(z, recurrent)
		z.AddVec(z, l.bias)

		next := make([]float64, u)
		for j := 0; j < u; j++ {
			inputGate := l.recurrentActivation(z.AtVec(j))
			forgetGate := l.recurrentActivation(z.AtVec(u + j))
			candidate := l.activation(z.AtVec(2*u + j))
			outputGate := l.recurrentActivation(z.AtVec(3*u + j))

			c[j] = forgetGate*c[j] + inputGate*candidate
			next[j] = outputGate * l.activation(c[j])
		}
		h = mat.NewVecDense(u, next)

		if l.returnSequences {
			out = append(out, h)
		}
	}

	if !l.returnSequences {
		out = []*mat.VecDense{h}
	}
	return out
}

type denseLayer struct {
	units      int
	kernel     *mat.Dense
	bias       *mat.VecDense
	activation activationFunc
	softmax    bool
}

func newDenseLayer(spec layerSpec, inputDim int) (*denseLayer, error) {
	if spec.Units <= 0 {
		return nil, fmt.Errorf("units must be positive, got %d", spec.Units)
	}

	d := &denseLayer{units: spec.Units}
	if spec.Activation == "softmax" {
		d.softmax = true
		d.activation = linear
	} else {
		activation, err := lookupActivation(spec.Activation)
		if err != nil {
			return nil, err
		}
		d.activation = activation
	}

	kernel, err := toDense("kernel", spec.Kernel, inputDim, spec.Units)
	if err != nil {
		return nil, err
	}
	d.kernel = kernel

	// Dense layers may be exported with use_bias=False
	if len(spec.Bias) == 0 {
		d.bias = mat.NewVecDense(spec.Units, nil)
	} else if d.bias, err = toVec("bias", spec.Bias, spec.Units); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *denseLayer) forward(sequence []*mat.VecDense) []*mat.VecDense {
	out := make([]*mat.VecDense, len(sequence))
	for t, x := range sequence {
		y := mat.NewVecDense(d.units, nil)
		y.MulVec(d.kernel.T(), x)
		y.AddVec(y, d.bias)

		raw := y.RawVector().Data
		for i, v := range raw {
			raw[i] = d.activation(v)
		}
		if d.softmax {
			softmax(raw)
		}
		out[t] = y
	}
	return out
}
