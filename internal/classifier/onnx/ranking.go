package onnx

import (
	"math"
	"sort"

	"github.com/at-ishikawa/photolingo/internal/classifier"
)

const probabilityTolerance = 1e-3

// rank converts raw scores into the k most confident predictions.
func rank(scores []float32, labels []string, k int) []classifier.Prediction {
	probabilities := toProbabilities(scores)

	n := len(probabilities)
	if len(labels) < n {
		n = len(labels)
	}
	predictions := make([]classifier.Prediction, 0, n)
	for i := 0; i < n; i++ {
		predictions = append(predictions, classifier.Prediction{
			Label:      labels[i],
			Confidence: probabilities[i],
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})
	if k > 0 && len(predictions) > k {
		predictions = predictions[:k]
	}
	return predictions
}

// toProbabilities keeps scores that already form a distribution and applies softmax otherwise.
// NaN scores get confidence 0. Positive infinities share the whole mass.
func toProbabilities(scores []float32) []float64 {
	result := make([]float64, len(scores))
	if isDistribution(scores) {
		for i, score := range scores {
			result[i] = math.Min(math.Max(float64(score), 0), 1)
		}
		return result
	}

	maxScore := math.Inf(-1)
	infinities := 0
	for _, score := range scores {
		value := float64(score)
		if math.IsNaN(value) {
			continue
		}
		if math.IsInf(value, 1) {
			infinities++
		}
		maxScore = math.Max(maxScore, value)
	}
	if infinities > 0 {
		for i, score := range scores {
			if math.IsInf(float64(score), 1) {
				result[i] = 1 / float64(infinities)
			}
		}
		return result
	}
	if math.IsInf(maxScore, -1) {
		return result
	}

	var sum float64
	for i, score := range scores {
		value := float64(score)
		if math.IsNaN(value) {
			continue
		}
		result[i] = math.Exp(value - maxScore)
		sum += result[i]
	}
	for i := range result {
		result[i] /= sum
	}
	return result
}

func isDistribution(scores []float32) bool {
	if len(scores) == 0 {
		return false
	}
	var sum float64
	for _, score := range scores {
		value := float64(score)
		if math.IsNaN(value) || value < -probabilityTolerance || value > 1+probabilityTolerance {
			return false
		}
		sum += value
	}
	return math.Abs(sum-1) <= probabilityTolerance
}
