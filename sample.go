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


package demosaic

// An accessor returns the bayer sample at (row, col), widened to the
// kernel accumulator type. The boundary policy lives entirely in the
// accessor, so the same kernels and composers serve both the safe and
// the fast traversal.
type accessor func(row, col int32) int32

// reflectCoord maps an out-of-bounds coordinate to the nearest
// in-bounds coordinate of the same bayer parity. Not a geometric
// mirror: the reflected sample keeps the color identity the kernels
// assume.
func reflectCoord(x, n int32) int32 {
	if x < 0 {
		return (-x) % 2
	}
	if x >= n {
		return n - 2 + (x % 2)
	}
	return x
}

// safeAccessor samples with parity-preserving boundary reflection on
// both coordinates. Valid for any (row, col).
func safeAccessor[T Sample](bayer []T, nRows, nCols int32) accessor {
	return func(row, col int32) int32 {
		row = reflectCoord(row, nRows)
		col = reflectCoord(col, nCols)
		return int32(bayer[row*nCols+col])
	}
}

// fastAccessor reads the backing array directly, with no bounds
// handling. The caller must guarantee the whole 5x5 kernel support
// lies inside the image.
func fastAccessor[T Sample](bayer []T, nCols int32) accessor {
	return func(row, col int32) int32 {
		return int32(bayer[row*nCols+col])
	}
}
