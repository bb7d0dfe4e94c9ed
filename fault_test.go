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

import (
	"strings"
	"testing"
)

// expectViolation runs fn and checks that it aborts with a Violation
// for the given operation and field, delivered to the fault handler
// before the panic.
func expectViolation(t *testing.T, op, field string, fn func()) {
	t.Helper()
	var captured []Violation
	SetFaultHandler(func(v Violation) { captured = append(captured, v) })
	defer SetFaultHandler(nil)
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("%s: no panic on violated precondition", op)
			return
		}
		v, ok := r.(Violation)
		if !ok {
			t.Errorf("%s: panic value %v; want a Violation", op, r)
			return
		}
		if v.Op != op {
			t.Errorf("%s: violation op=%q; want %q", op, v.Op, op)
		}
		if v.Field != field {
			t.Errorf("%s: violation field=%q; want %q", op, v.Field, field)
		}
		if len(captured) != 1 || captured[0] != v {
			t.Errorf("%s: handler saw %v; want exactly the panicked violation", op, captured)
		}
	}()
	fn()
}

func TestRowIndexViolation(t *testing.T) {
	args := &Args{NRows: 4, NCols: 4, MaxVal: 4095, Coefs: Rec601}
	bayer := make([]uint16, 16)
	out := make([]PixRGB16, 4)
	// row == n_rows must abort before any out-of-bounds read
	expectViolation(t, "RowRGB16", "row", func() { RowRGB16(bayer, args, 4, out) })
	expectViolation(t, "RowRGB16", "row", func() { RowRGB16(bayer, args, -1, out) })
}

func TestDimensionViolations(t *testing.T) {
	bayer := make([]uint16, 64)
	out := make([]PixRGB16, 64)
	expectViolation(t, "RGB16", "n_rows", func() {
		RGB16(bayer, &Args{NRows: 0, NCols: 4, MaxVal: 4095}, out)
	})
	expectViolation(t, "RGB16", "n_rows", func() {
		RGB16(bayer, &Args{NRows: 3, NCols: 4, MaxVal: 4095}, out)
	})
	expectViolation(t, "RGB16", "n_cols", func() {
		RGB16(bayer, &Args{NRows: 4, NCols: 7, MaxVal: 4095}, out)
	})
	expectViolation(t, "RGB16", "", func() {
		RGB16(nil, &Args{NRows: 4, NCols: 4, MaxVal: 4095}, out)
	})
	expectViolation(t, "RGB16", "len(bayer)", func() {
		RGB16(bayer[:8], &Args{NRows: 4, NCols: 4, MaxVal: 4095}, out)
	})
	expectViolation(t, "RGB16", "len(out)", func() {
		RGB16(bayer, &Args{NRows: 8, NCols: 8, MaxVal: 4095}, out[:16])
	})
}

func TestRangeViolations(t *testing.T) {
	bayer16 := make([]uint16, 16)
	bayer8 := make([]uint8, 16)
	args := Args{NRows: 4, NCols: 4, MaxVal: 4095, RShift: 4, Coefs: Rec601}

	a := args
	a.MaxVal = 256 // too big for an 8-bit target
	expectViolation(t, "RGB8", "max_val", func() {
		RGB8(bayer8, &a, make([]PixRGB8, 16))
	})

	a = args
	a.RShift = -1
	expectViolation(t, "RGB16To8", "rshift", func() {
		RGB16To8(bayer16, &a, make([]PixRGB8, 16))
	})

	a = args
	a.RShift = 2 // 4095>>2 still exceeds 255
	expectViolation(t, "Mono16To8", "max_val", func() {
		Mono16To8(bayer16, &a, make([]uint8, 16))
	})

	a = args
	a.Coefs.Red = 1.5
	expectViolation(t, "Mono16", "coefs.red", func() {
		Mono16(bayer16, &a, make([]uint16, 16))
	})

	a = args
	a.Coefs.Blue = -0.1
	expectViolation(t, "RowMono16", "coefs.blue", func() {
		RowMono16(bayer16, &a, 0, make([]uint16, 4))
	})
}

func TestViolationError(t *testing.T) {
	v := Violation{Op: "RowRGB16", Check: "0 <= row < n_rows", Field: "row", Value: 4}
	msg := v.Error()
	for _, want := range []string{"RowRGB16", "0 <= row < n_rows", "row=4"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error()=%q; want it to contain %q", msg, want)
		}
	}
	v = Violation{Op: "RGB16", Check: "bayer != nil"}
	if msg = v.Error(); !strings.Contains(msg, "bayer != nil") {
		t.Errorf("Error()=%q; want it to contain the check", msg)
	}
}
