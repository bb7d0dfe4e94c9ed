// Copyright (C) 2020 The demosaic authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


// Package quality computes reconstruction error metrics between a
// demosaiced image and its ground truth.
package quality

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// A PixelF is an RGB pixel with channels normalized to [0,1].
type PixelF struct {
	R, G, B float64
}

// RMS returns the root mean square difference between two channel
// vectors of equal length. Returns NaN for empty or mismatched input.
func RMS(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	sq := make([]float64, len(a))
	for i := range a {
		d := a[i] - b[i]
		sq[i] = d * d
	}
	return math.Sqrt(stat.Mean(sq, nil))
}

// PSNR converts an RMS error into peak signal-to-noise ratio in dB for
// the given channel ceiling. An exact reconstruction yields +Inf.
func PSNR(rms, maxVal float64) float64 {
	if rms == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(maxVal/rms)
}

// MeanDeltaLab returns the mean perceptual color difference between
// two pixel vectors, as the Euclidean distance in CIE L*a*b* space.
func MeanDeltaLab(a, b []PixelF) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	ds := make([]float64, len(a))
	for i := range a {
		ca := colorful.Color{R: a[i].R, G: a[i].G, B: a[i].B}
		cb := colorful.Color{R: b[i].R, G: b[i].G, B: b[i].B}
		ds[i] = ca.DistanceLab(cb)
	}
	return stat.Mean(ds, nil)
}
