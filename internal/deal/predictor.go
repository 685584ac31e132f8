// Package deal estimates deal-success probability from a regression model
// bootstrapped on synthetic outcomes.
package deal

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/digbiz/insight-engine/internal/config"
	"github.com/digbiz/insight-engine/internal/model"
)

const (
	featureCount = 5

	// trainedConfidence is reported with every successful prediction;
	// degradedConfidence accompanies the neutral fallback.
	trainedConfidence  = 0.82
	degradedConfidence = 0.3
)

// factorTable assigns a static importance to each feature, in feature-vector
// order. Factors with importance at or below reportThreshold are not
// surfaced to callers.
var factorTable = []struct {
	Name       string
	Importance float64
}{
	{"Deal Value", 0.2},
	{"Description Detail", 0.1},
	{"Partner Compatibility", 0.4},
	{"Urgency", 0.1},
	{"Timeline", 0.2},
}

const reportThreshold = 0.15

// Predictor estimates deal outcomes. The regression model is trained exactly
// once, on first use, from a deterministically seeded synthetic dataset;
// after that the predictor is read-only and safe for concurrent use.
type Predictor struct {
	cfg config.DealConfig

	trainOnce sync.Once
	coeffs    []float64
	trainErr  error
}

// NewPredictor creates a Predictor. Training is deferred until the first
// prediction; call Warmup to initialize eagerly at startup.
func NewPredictor(cfg config.DealConfig) *Predictor {
	if cfg.TrainingSamples <= 0 {
		cfg.TrainingSamples = 1000
	}
	return &Predictor{cfg: cfg}
}

// Warmup trains the model immediately and reports any training failure.
func (p *Predictor) Warmup() error {
	p.trainOnce.Do(p.train)
	return p.trainErr
}

// Predict estimates the success probability for a deal and explains the
// contributing factors. Failures degrade to a neutral 50% prediction with
// reduced confidence.
func (p *Predictor) Predict(d model.DealRecord) (prediction model.DealPrediction) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("deal: prediction failed",
				zap.Any("panic", r),
			)
			prediction = degradedPrediction()
		}
	}()

	p.trainOnce.Do(p.train)
	if p.trainErr != nil {
		return degradedPrediction()
	}

	features := extractFeatures(d)

	probability := clamp01(predictLinear(p.coeffs, features))

	return model.DealPrediction{
		SuccessProbability: probability * 100,
		Confidence:         trainedConfidence,
		KeyFactors:         keyFactors(features),
		Recommendations:    recommendations(features, probability),
	}
}

// extractFeatures normalizes a deal record into the model's feature vector:
// value in millions, description length per 1000 chars, match score fraction,
// urgency flag, duration in years.
func extractFeatures(d model.DealRecord) []float64 {
	urgency := 0.0
	if strings.Contains(strings.ToLower(d.Description), "urgent") {
		urgency = 1.0
	}

	return []float64{
		d.ValueOrDefault() / 1_000_000,
		float64(len(d.Description)) / 1000,
		d.MatchScoreOrDefault() / 100,
		urgency,
		d.DurationOrDefault() / 12,
	}
}

// train fits the regression on synthetic outcomes: success driven by value,
// partner compatibility, urgency, and inverse duration, plus Gaussian noise.
func (p *Predictor) train() {
	rng := rand.New(rand.NewSource(p.cfg.TrainingSeed))

	n := p.cfg.TrainingSamples
	features := make([][]float64, n)
	targets := make([]float64, n)

	for i := 0; i < n; i++ {
		sample := make([]float64, featureCount)
		for j := range sample {
			sample[j] = rng.Float64()
		}
		features[i] = sample

		y := sample[0]*0.2 +
			sample[2]*0.4 +
			sample[3]*0.1 +
			(1-sample[4])*0.2 +
			rng.NormFloat64()*0.1
		targets[i] = clamp01(y)
	}

	p.coeffs, p.trainErr = fitOLS(features, targets)
	if p.trainErr != nil {
		zap.L().Error("deal: model training failed", zap.Error(p.trainErr))
		return
	}

	zap.L().Info("deal: success model trained",
		zap.Int("samples", n),
		zap.Int64("seed", p.cfg.TrainingSeed),
	)
}

// keyFactors reports the statically important features with their current
// normalized values, sorted by importance descending.
func keyFactors(features []float64) []model.KeyFactor {
	var factors []model.KeyFactor
	for i, f := range factorTable {
		if f.Importance <= reportThreshold {
			continue
		}
		impact := "negative"
		if features[i] > 0.5 {
			impact = "positive"
		}
		factors = append(factors, model.KeyFactor{
			Factor:       f.Name,
			Importance:   f.Importance,
			CurrentValue: features[i],
			Impact:       impact,
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Importance > factors[j].Importance
	})
	return factors
}

// recommendations emits advisory strings for weak spots, evaluated in fixed
// order so downstream rendering is stable.
func recommendations(features []float64, probability float64) []string {
	var recs []string

	if features[2] < 0.6 {
		recs = append(recs, "Consider improving partner alignment through preliminary meetings")
	}
	if features[1] < 0.3 {
		recs = append(recs, "Provide more detailed deal documentation to build trust")
	}
	if probability < 0.5 {
		recs = append(recs, "Consider risk mitigation strategies or deal restructuring")
	}
	if features[0] > 0.8 {
		recs = append(recs, "Implement milestone-based payment structure for large deals")
	}
	return recs
}

func degradedPrediction() model.DealPrediction {
	return model.DealPrediction{
		SuccessProbability: 50.0,
		Confidence:         degradedConfidence,
		KeyFactors:         []model.KeyFactor{},
		Recommendations:    []string{},
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
