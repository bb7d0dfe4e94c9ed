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
	"fmt"
)

// A Violation describes a failed precondition on a public operation:
// a logic error in the caller, never an expected runtime condition.
// Kernel overshoot is not a violation; it is resolved by saturation.
type Violation struct {
	Op    string  // public operation that was invoked
	Check string  // predicate that failed
	Field string  // offending argument, if a single one is at fault
	Value float64 // offending value, widened
}

func (v Violation) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("demosaic: %s: precondition %q failed", v.Op, v.Check)
	}
	return fmt.Sprintf("demosaic: %s: precondition %q failed: %s=%g", v.Op, v.Check, v.Field, v.Value)
}

// A FaultHandler receives every Violation before the operation aborts.
// Embedding applications install one to log, halt, or raise a platform
// fault. The handler does not decide whether to continue: there is no
// continuing past a failed precondition.
type FaultHandler func(Violation)

var faultHandler FaultHandler

// SetFaultHandler installs handler for subsequent violations. A nil
// handler restores the default, which only panics.
func SetFaultHandler(handler FaultHandler) {
	faultHandler = handler
}

// fail reports v through the installed handler, then aborts the
// running operation by panicking with the Violation. No out-of-bounds
// read ever happens after a failed check.
func fail(v Violation) {
	if faultHandler != nil {
		faultHandler(v)
	}
	panic(v)
}
