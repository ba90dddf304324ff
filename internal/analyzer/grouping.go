package analyzer

import (
	"math"
	"strings"
)

// Temperature band labels, coldest first.
const (
	BandCold = "cold (<10°C)"
	BandCool = "cool (10-20°C)"
	BandWarm = "warm (20-30°C)"
	BandHot  = "hot (>30°C)"
)

// Time-of-day band labels.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
)

// TemperatureBands is the classification order for temperature buckets.
var TemperatureBands = []string{BandCold, BandCool, BandWarm, BandHot}

// TimeOfDayBands is the classification order for time buckets.
var TimeOfDayBands = []string{Morning, Afternoon, Evening}

// TemperatureBand classifies a temperature in °C. Upper bounds are inclusive:
// 10 is cool, 20 is cool, 30 is warm.
func TemperatureBand(temp float64) string {
	switch {
	case temp < 10:
		return BandCold
	case temp <= 20:
		return BandCool
	case temp <= 30:
		return BandWarm
	default:
		return BandHot
	}
}

// ConditionKey normalizes a raw weather condition for grouping. The boolean
// is false for an empty condition.
func ConditionKey(conditions string) (string, bool) {
	if strings.TrimSpace(conditions) == "" {
		return "", false
	}
	return strings.ToLower(conditions), true
}

// TimeOfDayBand classifies an hour of the day: before 12 is morning, 12
// through 16 is afternoon, 17 onwards is evening.
func TimeOfDayBand(hour int) string {
	switch {
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	default:
		return Evening
	}
}

// GroupBy partitions items by key and sums value per group. Buckets are
// returned in the order their key was first seen; only non-empty buckets
// exist. Items for which key reports false are skipped.
func GroupBy[T any](items []T, key func(T) (string, bool), value func(T) float64) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket

	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, Bucket{Key: k})
		}
		buckets[i].Sum += value(item)
		buckets[i].Count++
	}
	return buckets
}

// Aggregate returns the bucket average. Buckets are never empty once
// materialized by GroupBy.
func (b Bucket) Aggregate() Aggregate {
	if b.Count == 0 {
		return Aggregate{}
	}
	return Aggregate{Avg: b.Sum / float64(b.Count), Count: b.Count}
}

// OrderBy returns buckets sorted by the position of their key in order.
// Keys not present in order keep their relative order at the end.
func OrderBy(buckets []Bucket, order []string) []Bucket {
	rank := make(map[string]int, len(order))
	for i, k := range order {
		rank[k] = i
	}
	out := make([]Bucket, 0, len(buckets))
	for _, k := range order {
		for _, b := range buckets {
			if b.Key == k {
				out = append(out, b)
			}
		}
	}
	for _, b := range buckets {
		if _, ok := rank[b.Key]; !ok {
			out = append(out, b)
		}
	}
	return out
}

// qualified returns the buckets with at least minCount samples.
func qualified(buckets []Bucket, minCount int) []Bucket {
	var out []Bucket
	for _, b := range buckets {
		if b.Count >= minCount {
			out = append(out, b)
		}
	}
	return out
}

// percent rounds a value half away from zero, matching how averages are
// presented to users.
func percent(v float64) int {
	return int(math.Round(v))
}
