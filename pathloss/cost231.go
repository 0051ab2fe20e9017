package pathloss

import (
	"math"

	"github.com/wiless/vlib"
)

// Cost231Model is the COST231 extension of the Hata model
type Cost231Model struct{}

func (Cost231Model) Type() ModelType { return COST231 }

func (Cost231Model) LossInDb(p Parameters) (float64, error) {
	return LossCost231(p)
}

func (Cost231Model) LossInDb3D(src, dest vlib.Location3D, freqMHz float64, area AreaType) (float64, error) {
	return LossCost231(link3D(src, dest, freqMHz, area))
}

// LossCost231 returns the COST231-Hata path loss in dB
func LossCost231(p Parameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	fc, hte, hre, d := p.FreqMHz, p.BSHeightM, p.MSHeightM, p.DistanceKm

	var Cm float64
	switch p.Area {
	case Urban:
		Cm = 3
	case Suburban, Rural:
		Cm = 0
	}

	a := mobileCorrection(fc, hre)
	result := 46.3 + 33.9*math.Log10(fc) - 13.82*math.Log10(hte) - a + (44.9-6.55*math.Log10(hte))*math.Log10(d) + Cm
	return finite(result)
}
