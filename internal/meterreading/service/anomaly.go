package service

import "fmt"

// anomalyDetector flags implausible consumption values: negative deltas from
// a rolled-back or replaced meter, and sudden spikes against the
// subscriber's rolling average.
type anomalyDetector struct {
	spikeThreshold float64
	minDataPoints  int
}

func newAnomalyDetector(spikeThreshold float64, minDataPoints int) *anomalyDetector {
	return &anomalyDetector{
		spikeThreshold: spikeThreshold,
		minDataPoints:  minDataPoints,
	}
}

// Detect checks whether consumption is anomalous given historical values.
func (d *anomalyDetector) Detect(consumption float64, historical []float64) (bool, string) {
	if consumption < 0 {
		return true, "negative consumption, meter rollback or replacement suspected"
	}

	// Spike detection needs enough history to form a baseline.
	if len(historical) < d.minDataPoints {
		return false, ""
	}

	sum := 0.0
	for _, v := range historical {
		sum += v
	}
	average := sum / float64(len(historical))

	if average > 0 && consumption > d.spikeThreshold*average {
		return true, fmt.Sprintf("consumption %.2f exceeds %.1fx rolling average %.2f",
			consumption, d.spikeThreshold, average)
	}

	return false, ""
}
