package model

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/go-evforecaster/feature"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

// Linear is a serializeable linear regression artifact. The prediction is the intercept plus
// the weighted sum of the feature values. Features without a coefficient have a weight of 0.
type Linear struct {
	Name         string          `json:"name"`
	TrainedAt    time.Time       `json:"trained_at"`
	Intercept    float64         `json:"intercept"`
	Coefficients []FeatureWeight `json:"coefficients"`

	weights *mat.VecDense
}

// FeatureWeight is the coefficient for a single feature label
type FeatureWeight struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// NewLinear builds a linear predictor from an intercept and coefficients keyed by feature label
func NewLinear(name string, intercept float64, coef map[string]float64) (*Linear, error) {
	fws := make([]FeatureWeight, 0, len(coef))
	for _, label := range feature.Labels() {
		if w, exists := coef[label]; exists {
			fws = append(fws, FeatureWeight{Label: label, Value: w})
		}
	}
	for label := range coef {
		if !feature.IsLabel(label) {
			return nil, fmt.Errorf("%s, %w", label, ErrUnknownFeature)
		}
	}

	l := &Linear{
		Name:         name,
		Intercept:    intercept,
		Coefficients: fws,
	}
	if err := l.init(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads a json encoded linear model artifact
func Load(r io.Reader) (*Linear, error) {
	var l Linear
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("unable to decode linear model, %w", err)
	}
	if err := l.init(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadFile reads a json encoded linear model artifact from path
func LoadFile(path string) (*Linear, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// init validates the coefficients and lays them out in feature label order
func (l *Linear) init() error {
	if len(l.Coefficients) == 0 {
		return ErrNoCoefficients
	}

	labels := feature.Labels()
	idx := make(map[string]int, len(labels))
	for i, label := range labels {
		idx[label] = i
	}

	w := make([]float64, len(labels))
	seen := make(map[string]struct{}, len(l.Coefficients))
	for _, fw := range l.Coefficients {
		i, exists := idx[fw.Label]
		if !exists {
			return fmt.Errorf("%s, %w", fw.Label, ErrUnknownFeature)
		}
		if _, dup := seen[fw.Label]; dup {
			return fmt.Errorf("%s, %w", fw.Label, ErrDuplicateFeature)
		}
		seen[fw.Label] = struct{}{}
		w[i] = fw.Value
	}
	l.weights = mat.NewVecDense(len(w), w)
	return nil
}

// Predict returns intercept + w·x for the feature vector
func (l *Linear) Predict(_ context.Context, v feature.Vector) (float64, error) {
	if l == nil || l.weights == nil {
		return 0, ErrUninitializedPredictor
	}
	x := mat.NewVecDense(l.weights.Len(), v.Values())
	return l.Intercept + mat.Dot(l.weights, x), nil
}

// ModelEq returns a string representation of the model linear equation in the format of
// y ~ b + m1x1 + m2x2 + ...
func (l *Linear) ModelEq() string {
	eq := fmt.Sprintf("y ~ %.2f", l.Intercept)
	for _, fw := range l.Coefficients {
		if fw.Value == 0 {
			continue
		}
		eq += fmt.Sprintf("+%.2f*%s", fw.Value, fw.Label)
	}
	return eq
}

// TablePrint writes a table of the model coefficients
func (l *Linear) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%sLinear Model: %s\n", prefix, l.Name); err != nil {
		return err
	}
	if !l.TrainedAt.IsZero() {
		if _, err := fmt.Fprintf(w, "%s%sTrained At: %s\n", prefix, indent, l.TrainedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s%sIntercept: %.3f\n", prefix, indent, l.Intercept); err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sLabel\tValue\t\n", prefix, indent); err != nil {
		return err
	}
	for _, fw := range l.Coefficients {
		val := fmt.Sprintf("%.3f", fw.Value)
		if fw.Value == 0 {
			val = "..."
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t\n", prefix, indent, fw.Label, val); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
