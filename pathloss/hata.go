package pathloss

import (
	"fmt"
	"math"

	"github.com/wiless/vlib"
)

// HataModel is the Okumura-Hata model for urban, suburban and rural areas
type HataModel struct{}

func (HataModel) Type() ModelType { return Hata }

func (HataModel) LossInDb(p Parameters) (float64, error) {
	return LossHata(p)
}

func (HataModel) LossInDb3D(src, dest vlib.Location3D, freqMHz float64, area AreaType) (float64, error) {
	return LossHata(link3D(src, dest, freqMHz, area))
}

// LossHata returns the Hata path loss in dB.
//
// Suburban and Rural share the medium/small city correction and receive no
// further area adjustment.
func LossHata(p Parameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	fc, hte, hre, d := p.FreqMHz, p.BSHeightM, p.MSHeightM, p.DistanceKm

	var ahm float64
	switch p.Area {
	case Urban:
		if fc <= 300 {
			ahm = 8.29*math.Pow(math.Log10(1.54*hre), 2) - 1.1
		} else {
			ahm = 3.2*math.Pow(math.Log10(11.75*hre), 2) - 4.97
		}
	case Suburban, Rural:
		ahm = mobileCorrection(fc, hre)
	}

	result := 69.55 + 26.16*math.Log10(fc) - 13.82*math.Log10(hte) - ahm + (44.9-6.55*math.Log10(hte))*math.Log10(d)
	return finite(result)
}

// mobileCorrection is a(hm) for medium and small cities
func mobileCorrection(fc, hre float64) float64 {
	return (1.1*math.Log10(fc)-0.7)*hre - (1.56*math.Log10(fc) - 0.8)
}

func finite(plDb float64) (float64, error) {
	if math.IsNaN(plDb) || math.IsInf(plDb, 0) {
		return 0, fmt.Errorf("path loss %v: %w", plDb, ErrInvalidParameter)
	}
	return plDb, nil
}
