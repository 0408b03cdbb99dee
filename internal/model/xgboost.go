package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const schemaClassifier = "xgb_model.schema.json"

// Objectives understood by the evaluator
const (
	objectiveSoftprob = "multi:softprob"
	objectiveSoftmax  = "multi:softmax"
	objectiveLogistic = "binary:logistic"
)

// boosterDocument mirrors the subset of XGBoost's native JSON model we need
type boosterDocument struct {
	Learner struct {
		GradientBooster struct {
			Name       string          `json:"name"`
			Model      *gbtreeModel    `json:"model"`
			Gbtree     *gbtreeDocument `json:"gbtree"`
			WeightDrop []float64       `json:"weight_drop"`
		} `json:"gradient_booster"`
		LearnerModelParam struct {
			BaseScore  string `json:"base_score"`
			NumClass   string `json:"num_class"`
			NumFeature string `json:"num_feature"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
	} `json:"learner"`
}

type gbtreeDocument struct {
	Model *gbtreeModel `json:"model"`
}

type gbtreeModel struct {
	TreeInfo []int      `json:"tree_info"`
	Trees    []treeJSON `json:"trees"`
}

type treeJSON struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     flexBools `json:"default_left"`
	SplitType       []int     `json:"split_type"`
}

// flexBools accepts both [true,false] and [1,0]; XGBoost has emitted each
type flexBools []bool

func (f *flexBools) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]bool, len(raw))
	for i, r := range raw {
		switch s := string(bytes.TrimSpace(r)); s {
		case "true", "1":
			out[i] = true
		case "false", "0":
			out[i] = false
		default:
			return fmt.Errorf("invalid default_left value %s", s)
		}
	}
	*f = out
	return nil
}

type treeNode struct {
	left        int32
	right       int32
	feature     int32
	condition   float32
	defaultLeft bool
}

type regressionTree struct {
	nodes []treeNode
}

func (t *regressionTree) leaf(features []float64) float64 {
	i := int32(0)
	for {
		n := &t.nodes[i]
		if n.left < 0 {
			return float64(n.condition)
		}
		x := features[n.feature]
		switch {
		case math.IsNaN(x):
			if n.defaultLeft {
				i = n.left
			} else {
				i = n.right
			}
		case float32(x) < n.condition:
			i = n.left
		default:
			i = n.right
		}
	}
}

// Booster evaluates a gradient-boosted tree ensemble
type Booster struct {
	objective  string
	numClass   int
	numFeature int
	baseMargin []float64
	trees      []regressionTree
	treeClass  []int
	treeWeight []float64
}

// LoadClassifier reads an XGBoost model saved with save_model("*.json")
func LoadClassifier(path string) (*Booster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier: %w", err)
	}
	if err := validateDocument(schemaClassifier, data); err != nil {
		return nil, err
	}

	var doc boosterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode classifier: %w", err)
	}
	return newBooster(doc)
}

func newBooster(doc boosterDocument) (*Booster, error) {
	learner := doc.Learner
	b := &Booster{objective: learner.Objective.Name}

	switch b.objective {
	case objectiveSoftprob, objectiveSoftmax, objectiveLogistic:
	default:
		return nil, fmt.Errorf("unsupported objective %q", b.objective)
	}

	numClass, err := parseIntParam("num_class", learner.LearnerModelParam.NumClass)
	if err != nil {
		return nil, err
	}
	numFeature, err := parseIntParam("num_feature", learner.LearnerModelParam.NumFeature)
	if err != nil {
		return nil, err
	}
	b.numFeature = numFeature

	// num_class is 0 for binary models
	b.numClass = numClass
	if b.objective == objectiveLogistic {
		b.numClass = 1
	} else if numClass < 2 {
		return nil, fmt.Errorf("objective %s needs num_class >= 2, got %d", b.objective, numClass)
	}

	baseScores, err := parseBaseScore(learner.LearnerModelParam.BaseScore)
	if err != nil {
		return nil, err
	}
	b.baseMargin = make([]float64, b.numClass)
	for k := range b.baseMargin {
		score := baseScores[0]
		if len(baseScores) == b.numClass {
			score = baseScores[k]
		}
		if b.objective == objectiveLogistic {
			score = logit(score)
		}
		b.baseMargin[k] = score
	}

	gb := learner.GradientBooster
	model := gb.Model
	switch gb.Name {
	case "gbtree", "":
	case "dart":
		if gb.Gbtree != nil {
			model = gb.Gbtree.Model
		}
	default:
		return nil, fmt.Errorf("unsupported booster %q", gb.Name)
	}
	if model == nil {
		return nil, fmt.Errorf("booster %q has no tree model", gb.Name)
	}
	if len(model.TreeInfo) != len(model.Trees) {
		return nil, fmt.Errorf("tree_info has %d entries for %d trees", len(model.TreeInfo), len(model.Trees))
	}
	if gb.Name == "dart" && len(gb.WeightDrop) != len(model.Trees) {
		return nil, fmt.Errorf("weight_drop has %d entries for %d trees", len(gb.WeightDrop), len(model.Trees))
	}

	for i, tj := range model.Trees {
		tree, err := buildTree(tj, numFeature)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		class := model.TreeInfo[i]
		if class < 0 || class >= b.numClass {
			return nil, fmt.Errorf("tree %d: class %d out of range", i, class)
		}

		weight := 1.0
		if gb.Name == "dart" {
			weight = gb.WeightDrop[i]
		}

		b.trees = append(b.trees, tree)
		b.treeClass = append(b.treeClass, class)
		b.treeWeight = append(b.treeWeight, weight)
	}

	return b, nil
}

func buildTree(tj treeJSON, numFeature int) (regressionTree, error) {
	n := len(tj.LeftChildren)
	if n == 0 {
		return regressionTree{}, fmt.Errorf("tree has no nodes")
	}
	if len(tj.RightChildren) != n || len(tj.SplitIndices) != n || len(tj.SplitConditions) != n {
		return regressionTree{}, fmt.Errorf("node arrays have inconsistent lengths")
	}
	if len(tj.DefaultLeft) != 0 && len(tj.DefaultLeft) != n {
		return regressionTree{}, fmt.Errorf("default_left has %d entries for %d nodes", len(tj.DefaultLeft), n)
	}
	for _, st := range tj.SplitType {
		if st != 0 {
			return regressionTree{}, fmt.Errorf("categorical splits are not supported")
		}
	}

	nodes := make([]treeNode, n)
	for i := 0; i < n; i++ {
		left, right := tj.LeftChildren[i], tj.RightChildren[i]
		node := treeNode{
			left:      int32(left),
			right:     int32(right),
			feature:   int32(tj.SplitIndices[i]),
			condition: float32(tj.SplitConditions[i]),
		}
		if len(tj.DefaultLeft) == n {
			node.defaultLeft = tj.DefaultLeft[i]
		}

		if left >= 0 {
			// children always follow their parent
			if left <= i || left >= n || right <= i || right >= n {
				return regressionTree{}, fmt.Errorf("node %d has invalid children %d/%d", i, left, right)
			}
			if node.feature < 0 || int(node.feature) >= numFeature {
				return regressionTree{}, fmt.Errorf("node %d splits on feature %d of %d", i, node.feature, numFeature)
			}
		}
		nodes[i] = node
	}

	return regressionTree{nodes: nodes}, nil
}

// NumFeature is the input width the booster was trained on
func (b *Booster) NumFeature() int {
	return b.numFeature
}

// NumClass is the number of classes the booster can emit
func (b *Booster) NumClass() int {
	if b.objective == objectiveLogistic {
		return 2
	}
	return b.numClass
}

// Margins returns the raw per-class scores before the objective transform
func (b *Booster) Margins(features []float64) ([]float64, error) {
	if len(features) != b.numFeature {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrShapeMismatch, len(features), b.numFeature)
	}

	margins := append([]float64(nil), b.baseMargin...)
	for i := range b.trees {
		margins[b.treeClass[i]] += b.treeWeight[i] * b.trees[i].leaf(features)
	}
	return margins, nil
}

// Probabilities applies the objective transform to the margins
func (b *Booster) Probabilities(features []float64) ([]float64, error) {
	margins, err := b.Margins(features)
	if err != nil {
		return nil, err
	}
	if b.objective == objectiveLogistic {
		p := sigmoid(margins[0])
		return []float64{1 - p, p}, nil
	}
	softmax(margins)
	return margins, nil
}

// Predict returns the encoded class with the highest score
func (b *Booster) Predict(features []float64) (float64, error) {
	margins, err := b.Margins(features)
	if err != nil {
		return 0, err
	}
	if b.objective == objectiveLogistic {
		if margins[0] > 0 {
			return 1, nil
		}
		return 0, nil
	}

	best := 0
	for k := 1; k < len(margins); k++ {
		if margins[k] > margins[best] {
			best = k
		}
	}
	return float64(best), nil
}

func parseIntParam(name, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}

// parseBaseScore accepts "5E-1" and the vector form "[5E-1,5E-1]"
func parseBaseScore(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []float64{0.5}, nil
	}
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")

	var scores []float64
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid base_score %q: %w", raw, err)
		}
		scores = append(scores, v)
	}
	return scores, nil
}

func logit(p float64) float64 {
	const eps = 1e-16
	p = math.Min(math.Max(p, eps), 1-eps)
	return math.Log(p / (1 - p))
}
