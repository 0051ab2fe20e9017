// Package pathloss implements the Hata and COST231-Hata empirical path loss models
package pathloss

import (
	"fmt"
	"strings"

	"github.com/wiless/vlib"
)

// Model is a path loss model evaluated on a single link
type Model interface {
	Type() ModelType
	LossInDb(p Parameters) (plDb float64, err error)
	LossInDb3D(src, dest vlib.Location3D, freqMHz float64, area AreaType) (plDb float64, err error)
}

type ModelType int

const (
	Hata ModelType = iota
	COST231
)

var ModelTypes = [...]string{
	"Hata",
	"COST231",
}

var modelNames = [...]string{
	"Hata Model",
	"COST231 Model",
}

func (m ModelType) String() string {
	if m < 0 || int(m) >= len(ModelTypes) {
		return "Unknown-ModelType"
	}
	return ModelTypes[m]
}

// Name returns the display name, e.g. "Hata Model"
func (m ModelType) Name() string {
	if m < 0 || int(m) >= len(modelNames) {
		return "Unknown Model"
	}
	return modelNames[m]
}

// Title is the chart title for a distance sweep of this model
func (m ModelType) Title() string {
	return m.Name() + " Path Loss vs Distance"
}

func (m ModelType) valid() bool {
	return m == Hata || m == COST231
}

// ParseModelType accepts "hata", "cost231" or "cost231-hata" in any case
func ParseModelType(s string) (ModelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hata", "okumura-hata":
		return Hata, nil
	case "cost231", "cost231-hata", "cost-231":
		return COST231, nil
	}
	return 0, fmt.Errorf("model %q: %w", s, ErrInvalidParameter)
}

// New returns the Model implementation for t
func New(t ModelType) (Model, error) {
	switch t {
	case Hata:
		return HataModel{}, nil
	case COST231:
		return Cost231Model{}, nil
	}
	return nil, fmt.Errorf("model type %d: %w", int(t), ErrInvalidParameter)
}

// Evaluate computes the scalar path loss of p with model m
func Evaluate(m ModelType, p Parameters) (Result, error) {
	model, err := New(m)
	if err != nil {
		return Result{}, err
	}
	loss, err := model.LossInDb(p)
	if err != nil {
		return Result{}, err
	}
	return Result{Model: m, Params: p, LossDb: loss}, nil
}

// link3D converts a pair of 3D locations in metres into Parameters.
// The base station height is taken from src.Z and the mobile height from dest.Z
func link3D(src, dest vlib.Location3D, freqMHz float64, area AreaType) Parameters {
	return Parameters{
		FreqMHz:    freqMHz,
		BSHeightM:  src.Z,
		MSHeightM:  dest.Z,
		DistanceKm: src.DistanceFrom(dest) / 1.0e3,
		Area:       area,
	}
}
