package pathloss

import (
	"fmt"
	"math"

	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultSamples is the number of distances in a sweep unless told otherwise
	DefaultSamples = 100
	// MaxSamples bounds the memory a single sweep may allocate
	MaxSamples = 1000000
)

// Point is one sample of a distance sweep
type Point struct {
	DistanceKm float64 `csv:"distance_km" yaml:"distance_km"`
	LossDb     float64 `csv:"path_loss_db" yaml:"path_loss_db"`
}

// SweepResult holds path loss evaluated over linearly spaced distances.
// Distances are in ascending order and LossDb[i] belongs to DistanceKm[i]
type SweepResult struct {
	Model      ModelType
	Params     Parameters
	DistanceKm vlib.VectorF
	LossDb     vlib.VectorF
}

func (s SweepResult) Len() int {
	return len(s.DistanceKm)
}

// Points returns the sweep as (distance, loss) pairs
func (s SweepResult) Points() []Point {
	result := make([]Point, s.Len())
	for i := range result {
		result[i] = Point{DistanceKm: s.DistanceKm[i], LossDb: s.LossDb[i]}
	}
	return result
}

// Each calls fn for every sample in order until fn returns false
func (s SweepResult) Each(fn func(distanceKm, lossDb float64) bool) {
	for i := 0; i < s.Len(); i++ {
		if !fn(s.DistanceKm[i], s.LossDb[i]) {
			return
		}
	}
}

// Sweep evaluates model m at samples distances spaced linearly over
// [startKm, endKm], both ends included. p.DistanceKm is ignored
func Sweep(m ModelType, p Parameters, startKm, endKm float64, samples int) (SweepResult, error) {
	model, err := New(m)
	if err != nil {
		return SweepResult{}, err
	}
	if startKm > endKm {
		return SweepResult{}, fmt.Errorf("start %v km beyond end %v km: %w", startKm, endKm, ErrInvalidRange)
	}
	if err := positive("start distance", startKm); err != nil {
		return SweepResult{}, err
	}
	if math.IsInf(endKm, 0) || math.IsNaN(endKm) {
		return SweepResult{}, fmt.Errorf("end distance %v: %w", endKm, ErrInvalidParameter)
	}
	if samples < 1 || samples > MaxSamples {
		return SweepResult{}, fmt.Errorf("sample count %d outside [1, %d]: %w", samples, MaxSamples, ErrInvalidParameter)
	}
	if err := p.validateLink(); err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{
		Model:      m,
		Params:     p,
		DistanceKm: distances(startKm, endKm, samples),
		LossDb:     vlib.NewVectorF(samples),
	}
	result.Params.DistanceKm = 0

	for i, d := range result.DistanceKm {
		p.DistanceKm = d
		loss, err := model.LossInDb(p)
		if err != nil {
			return SweepResult{}, fmt.Errorf("distance %v km: %w", d, err)
		}
		result.LossDb[i] = loss
	}
	return result, nil
}

func distances(startKm, endKm float64, samples int) vlib.VectorF {
	result := vlib.NewVectorF(samples)
	if samples == 1 {
		result[0] = startKm
		return result
	}
	floats.Span(result, startKm, endKm)
	// Span may round the last sample away from the end point
	result[samples-1] = endKm
	return result
}
