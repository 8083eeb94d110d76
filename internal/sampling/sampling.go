// Package sampling provides the random primitives used by the dataset
// generators. Every function takes an explicit *rand.Rand so that a single
// seeded source drives the whole pipeline and runs stay reproducible.
package sampling

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// maxRejectionDraws bounds the rejection loops in TruncatedNormal and
// RandomDate. Past the bound the value is clamped (or shifted off Sunday)
// instead of looping further.
const maxRejectionDraws = 1000

// TaxonomyEntry is one row of a two-level weighted taxonomy, e.g.
// (category="rma", item="replacement", weight=0.12).
type TaxonomyEntry struct {
	Category string  `mapstructure:"category" json:"category"`
	Item     string  `mapstructure:"item" json:"item"`
	Weight   float64 `mapstructure:"weight" json:"weight"`
}

// PeakWindow describes one mode of the daily bimodal traffic distribution.
type PeakWindow struct {
	Mean   float64 `mapstructure:"mean" json:"mean"`
	SD     float64 `mapstructure:"sd" json:"sd"`
	Weight float64 `mapstructure:"weight" json:"weight"`
}

// PeakDistribution holds the morning and evening traffic peaks.
type PeakDistribution struct {
	Morning PeakWindow `mapstructure:"morning" json:"morning"`
	Evening PeakWindow `mapstructure:"evening" json:"evening"`
}

// WeightedChoice draws a single label proportionally to its weight. Weights
// are relative and need not sum to 1. Keys are visited in sorted order so the
// draw sequence does not depend on map iteration order.
func WeightedChoice(rng *rand.Rand, weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var total float64
	for _, k := range keys {
		total += weights[k]
	}
	if total <= 0 || len(keys) == 0 {
		return ""
	}

	target := rng.Float64() * total
	var cum float64
	for _, k := range keys {
		cum += weights[k]
		if target < cum {
			return k
		}
	}
	return keys[len(keys)-1]
}

// WeightedTaxonomyChoice draws one (category, item) pair from a flat weighted
// list representing a two-level taxonomy.
func WeightedTaxonomyChoice(rng *rand.Rand, entries []TaxonomyEntry) (string, string) {
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 || len(entries) == 0 {
		return "", ""
	}

	target := rng.Float64() * total
	var cum float64
	for _, e := range entries {
		cum += e.Weight
		if target < cum {
			return e.Category, e.Item
		}
	}
	last := entries[len(entries)-1]
	return last.Category, last.Item
}

// TruncatedNormal draws from Normal(mean, sd) until the value lands in
// [low, high], rounded to 2 decimals. The rejection loop is bounded; when the
// bound is hit the last draw is clamped into the interval instead.
func TruncatedNormal(rng *rand.Rand, mean, sd, low, high float64) float64 {
	val := rng.NormFloat64()*sd + mean
	for i := 0; (val < low || val > high) && i < maxRejectionDraws; i++ {
		val = rng.NormFloat64()*sd + mean
	}
	if val < low {
		val = low
	}
	if val > high {
		val = high
	}
	return Round2(val)
}

// RandomDate draws a uniform datetime in [start, start+wholeDays(end-start))
// and re-draws until the result is not a Sunday. The retry loop is bounded;
// if every bounded draw lands on a Sunday the final result is advanced by a
// day instead.
func RandomDate(rng *rand.Rand, start, end time.Time) time.Time {
	days := int64(end.Sub(start) / (24 * time.Hour))
	span := days * 24 * 60 * 60
	if span <= 0 {
		return start
	}

	var dt time.Time
	for i := 0; i < maxRejectionDraws; i++ {
		dt = start.Add(time.Duration(rng.Int63n(span)) * time.Second)
		if dt.Weekday() != time.Sunday {
			return dt
		}
	}
	return dt.AddDate(0, 0, 1)
}

// RandomDateOnly draws a uniform whole-day date in [start, end) with no
// weekday filter.
func RandomDateOnly(rng *rand.Rand, start, end time.Time) time.Time {
	days := int64(end.Sub(start) / (24 * time.Hour))
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, int(rng.Int63n(days)))
}

// DailyTimeOfDay picks an hour from the bimodal peak distribution, clamps it
// into [activeStart, activeEnd], draws minute and second uniformly, and
// combines the result with the date part of base.
func DailyTimeOfDay(rng *rand.Rand, base time.Time, peaks PeakDistribution, activeStart, activeEnd int) time.Time {
	var hour int
	if rng.Float64() < peaks.Morning.Weight {
		hour = int(rng.NormFloat64()*peaks.Morning.SD + peaks.Morning.Mean)
	} else {
		hour = int(rng.NormFloat64()*peaks.Evening.SD + peaks.Evening.Mean)
	}
	if hour < activeStart {
		hour = activeStart
	}
	if hour > activeEnd {
		hour = activeEnd
	}

	minute := rng.Intn(60)
	second := rng.Intn(60)
	y, m, d := base.Date()
	return time.Date(y, m, d, hour, minute, second, 0, base.Location())
}

// ValueParams bounds a metric to [Low, High] around a configured average.
type ValueParams struct {
	Low  float64 `mapstructure:"low" json:"low"`
	High float64 `mapstructure:"high" json:"high"`
	Avg  float64 `mapstructure:"avg" json:"avg"`
}

// ValueWithAverage scales the configured average by modifier, clamps it back
// into [Low, High], derives sd = (High-Low)/6 so ~99% of the mass stays in
// range, and samples a truncated normal around the result.
func ValueWithAverage(rng *rand.Rand, p ValueParams, modifier float64) float64 {
	avg := p.Avg * modifier
	if avg < p.Low {
		avg = p.Low
	}
	if avg > p.High {
		avg = p.High
	}
	sd := (p.High - p.Low) / 6
	return TruncatedNormal(rng, avg, sd, p.Low, p.High)
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundHalf rounds to the nearest 0.5.
func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

// Clamp limits v to [low, high].
func Clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
