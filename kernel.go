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

// The four fixed 5x5-support interpolation kernels from the Malvar
// paper (Fig. 2). Each evaluates an integer dot product over sampled
// neighbors, divides with truncation toward zero, and saturates to
// [0, maxVal]. Negative weights can overshoot in both directions, so
// saturation, not wraparound, is required. The int32 accumulator is
// safe: the largest absolute weight sum is 28, and 28*65535 is far
// below the int32 ceiling.

// limit clamps x to [0, max], inclusive.
func limit(x, max int32) int32 {
	if x >= max {
		return max
	}
	if x <= 0 {
		return 0
	}
	return x
}

// greenAtNongreen estimates green at a red or blue site:
//
//	      -1
//	       2
//	-1  2  4  2 -1
//	       2
//	      -1
func greenAtNongreen(at accessor, row, col, maxVal int32) int32 {
	val := (at(row-2, col+0)*-1 +
		at(row-1, col+0)*+2 +
		at(row+0, col-2)*-1 +
		at(row+0, col-1)*+2 +
		at(row+0, col+0)*+4 +
		at(row+0, col+1)*+2 +
		at(row+0, col+2)*-1 +
		at(row+1, col+0)*+2 +
		at(row+2, col+0)*-1) / 8
	return limit(val, maxVal)
}

// redBlueFromRow estimates red or blue at a green site from the
// same-color neighbors in its row. R at green in an R row and B at
// green in a B row share this kernel:
//
//	       1
//	   -2    -2
//	-2  8 10  8 -2
//	   -2    -2
//	       1
func redBlueFromRow(at accessor, row, col, maxVal int32) int32 {
	val := (at(row-2, col+0)*+1 +
		at(row-1, col-1)*-2 +
		at(row-1, col+1)*-2 +
		at(row+0, col-2)*-2 +
		at(row+0, col-1)*+8 +
		at(row+0, col+0)*+10 +
		at(row+0, col+1)*+8 +
		at(row+0, col+2)*-2 +
		at(row+1, col-1)*-2 +
		at(row+1, col+1)*-2 +
		at(row+2, col+0)*+1) / 16
	return limit(val, maxVal)
}

// redBlueFromColumn estimates red or blue at a green site from the
// same-color neighbors in its column. R at green in a B row and B at
// green in an R row share this kernel:
//
//	      -2
//	   -2  8 -2
//	 1    10     1
//	   -2  8 -2
//	      -2
func redBlueFromColumn(at accessor, row, col, maxVal int32) int32 {
	val := (at(row-2, col+0)*-2 +
		at(row-1, col-1)*-2 +
		at(row-1, col+0)*+8 +
		at(row-1, col+1)*-2 +
		at(row+0, col-2)*+1 +
		at(row+0, col+0)*+10 +
		at(row+0, col+2)*+1 +
		at(row+1, col-1)*-2 +
		at(row+1, col+0)*+8 +
		at(row+1, col+1)*-2 +
		at(row+2, col+0)*-2) / 16
	return limit(val, maxVal)
}

// redBlueFromOpposite estimates red at a blue site or blue at a red
// site from the diagonal neighbors:
//
//	      -3
//	    4     4
//	-3    12    -3
//	    4     4
//	      -3
func redBlueFromOpposite(at accessor, row, col, maxVal int32) int32 {
	val := (at(row-2, col+0)*-3 +
		at(row-1, col-1)*+4 +
		at(row-1, col+1)*+4 +
		at(row+0, col-2)*-3 +
		at(row+0, col+0)*+12 +
		at(row+0, col+2)*-3 +
		at(row+1, col-1)*+4 +
		at(row+1, col+1)*+4 +
		at(row+2, col+0)*-3) / 16
	return limit(val, maxVal)
}
