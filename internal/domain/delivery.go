package domain

import "strings"

// Represents a payload to drop at one destination.
type Delivery struct {
	Destination string
	WeightKg    float64
}

// MergeDeliveries lower-cases destinations and sums the weights of duplicate
// destinations. Order of first appearance is kept.
func MergeDeliveries(deliveries []Delivery) []Delivery {
	index := make(map[string]int, len(deliveries))
	merged := make([]Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		key := strings.ToLower(strings.TrimSpace(d.Destination))
		if i, ok := index[key]; ok {
			merged[i].WeightKg += d.WeightKg
			continue
		}
		index[key] = len(merged)
		merged = append(merged, Delivery{Destination: key, WeightKg: d.WeightKg})
	}
	return merged
}

// TotalWeightKg sums the delivery weights.
func TotalWeightKg(deliveries []Delivery) float64 {
	total := 0.0
	for _, d := range deliveries {
		total += d.WeightKg
	}
	return total
}
