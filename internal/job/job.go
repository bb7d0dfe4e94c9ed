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


// Package job turns a bayer raster file into a demosaiced image file.
// The command line tool and the REST service share this layer, so a
// job posted as JSON behaves exactly like the same flags on the CLI.
package job

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/abcouwer-jpl/demosaic"
	"github.com/abcouwer-jpl/demosaic/internal/bayerio"
)

// Output flavors, named after the demosaic entry point they drive.
const (
	FlavorRGB16     = "rgb16"
	FlavorRGB8      = "rgb8"
	FlavorRGB16To8  = "rgb16to8"
	FlavorMono16    = "mono16"
	FlavorMono8     = "mono8"
	FlavorMono16To8 = "mono16to8"
)

// A Job describes one conversion: which raster to read, which flavor
// to demosaic it into, and where to write the result. The output
// container is chosen by the output file extension (.pgm, .bmp, .tif).
type Job struct {
	Input   string              `json:"input"`
	Output  string              `json:"output"`
	Flavor  string              `json:"flavor"`
	MaxVal  uint16              `json:"maxVal,omitempty"`  // 0 takes the PGM header maxval
	RShift  int32               `json:"rshift,omitempty"`  // 0 derives the shift from maxVal
	Coefs   *demosaic.LumaCoefs `json:"coefs,omitempty"`   // nil uses Rec601
	Workers int                 `json:"workers,omitempty"` // 0 uses all hardware threads
}

// deriveShift returns the smallest shift that maps maxVal into 8 bits.
func deriveShift(maxVal uint16) int32 {
	shift := int32(0)
	for v := int32(maxVal); v > 255; v >>= 1 {
		shift++
	}
	return shift
}

// args resolves the job settings and the raster header into the
// demosaic argument block.
func (j *Job) args(r *bayerio.Raster) demosaic.Args {
	maxVal := j.MaxVal
	if maxVal == 0 {
		maxVal = r.MaxVal
	}
	rshift := j.RShift
	if rshift == 0 {
		rshift = deriveShift(maxVal)
	}
	coefs := demosaic.Rec601
	if j.Coefs != nil {
		coefs = *j.Coefs
	}
	return demosaic.Args{
		NRows:  r.NRows,
		NCols:  r.NCols,
		MaxVal: maxVal,
		RShift: rshift,
		Coefs:  coefs,
	}
}

// forEachRow runs fn for every row of the image, spreading rows across
// maxThreads goroutines. Contract violations raised by a row are
// recovered and returned as an error instead of unwinding the caller.
func forEachRow(nRows int32, maxThreads int, fn func(row int32)) (err error) {
	if maxThreads <= 0 {
		maxThreads = runtime.GOMAXPROCS(0)
	}
	limiter := make(chan bool, maxThreads)
	errs := make(chan error, nRows)
	for row := int32(0); row < nRows; row++ {
		limiter <- true
		go func(row int32) {
			defer func() {
				if r := recover(); r != nil {
					if v, ok := r.(demosaic.Violation); ok {
						errs <- v
					} else {
						errs <- fmt.Errorf("row %d: %v", row, r)
					}
				}
				<-limiter
			}()
			fn(row)
		}(row)
	}
	for i := 0; i < cap(limiter); i++ { // wait for goroutines to finish
		limiter <- true
	}
	select {
	case err = <-errs:
	default:
	}
	return err
}

// Run executes the job, logging progress to logWriter.
func (j *Job) Run(logWriter io.Writer) error {
	start := time.Now()
	raster, err := bayerio.ReadPGMFromFile(j.Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", j.Input, err)
	}
	fmt.Fprintf(logWriter, "Read %s: %dx%d bayer raster, maxval %d\n",
		j.Input, raster.NCols, raster.NRows, raster.MaxVal)

	args := j.args(raster)
	flavor := strings.ToLower(j.Flavor)

	deep := raster.Samples16 != nil
	switch flavor {
	case FlavorRGB8, FlavorMono8:
		if deep {
			return fmt.Errorf("flavor %s needs an 8-bit raster, but %s has maxval %d", flavor, j.Input, raster.MaxVal)
		}
	case FlavorRGB16, FlavorMono16, FlavorRGB16To8, FlavorMono16To8:
		if !deep {
			return fmt.Errorf("flavor %s needs a raster deeper than 8 bits, but %s has maxval %d", flavor, j.Input, raster.MaxVal)
		}
	default:
		return fmt.Errorf("unknown flavor %q", j.Flavor)
	}

	var write func() error
	switch flavor {
	case FlavorRGB16:
		out := make([]demosaic.PixRGB16, int(args.NRows)*int(args.NCols))
		err = forEachRow(args.NRows, j.Workers, func(row int32) {
			lo := int(row) * int(args.NCols)
			demosaic.RowRGB16(raster.Samples16, &args, row, out[lo:lo+int(args.NCols)])
		})
		write = func() error { return writeRGB16(j.Output, out, args) }
	case FlavorRGB8:
		out := make([]demosaic.PixRGB8, int(args.NRows)*int(args.NCols))
		err = forEachRow(args.NRows, j.Workers, func(row int32) {
			lo := int(row) * int(args.NCols)
			demosaic.RowRGB8(raster.Samples8, &args, row, out[lo:lo+int(args.NCols)])
		})
		write = func() error { return writeRGB8(j.Output, out, args) }
	case FlavorRGB16To8:
		out := make([]demosaic.PixRGB8, int(args.NRows)*int(args.NCols))
		err = forEachRow(args.NRows, j.Workers, func(row int32) {
			lo := int(row) * int(args.NCols)
			demosaic.RowRGB16To8(raster.Samples16, &args, row, out[lo:lo+int(args.NCols)])
		})
		write = func() error { return writeRGB8(j.Output, out, args) }
	case FlavorMono16:
		out := make([]uint16, int(args.NRows)*int(args.NCols))
		err = forEachRow(args.NRows, j.Workers, func(row int32) {
			lo := int(row) * int(args.NCols)
			demosaic.RowMono16(raster.Samples16, &args, row, out[lo:lo+int(args.NCols)])
		})
		write = func() error { return writeMono16(j.Output, out, args) }
	case FlavorMono8:
		out := make([]uint8, int(args.NRows)*int(args.NCols))
		err = forEachRow(args.NRows, j.Workers, func(row int32) {
			lo := int(row) * int(args.NCols)
			demosaic.RowMono8(raster.Samples8, &args, row, out[lo:lo+int(args.NCols)])
		})
		write = func() error { return bayerio.WritePGM8ToFile(j.Output, out, args.NRows, args.NCols, args.MaxVal) }
	case FlavorMono16To8:
		out := make([]uint8, int(args.NRows)*int(args.NCols))
		err = forEachRow(args.NRows, j.Workers, func(row int32) {
			lo := int(row) * int(args.NCols)
			demosaic.RowMono16To8(raster.Samples16, &args, row, out[lo:lo+int(args.NCols)])
		})
		write = func() error {
			maxShifted := uint16(int32(args.MaxVal) >> args.RShift)
			return bayerio.WritePGM8ToFile(j.Output, out, args.NRows, args.NCols, maxShifted)
		}
	}
	if err != nil {
		return err
	}
	if err := write(); err != nil {
		return fmt.Errorf("writing %s: %w", j.Output, err)
	}
	fmt.Fprintf(logWriter, "Wrote %s (%s) in %v\n", j.Output, flavor, time.Since(start))
	return nil
}

func writeRGB16(fileName string, pix []demosaic.PixRGB16, args demosaic.Args) error {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".tif", ".tiff":
		return bayerio.WriteTIFF16ToFile(fileName, pix, args.NRows, args.NCols, args.MaxVal)
	default:
		return fmt.Errorf("unsupported 16-bit RGB output extension %q, use .tif", ext)
	}
}

func writeRGB8(fileName string, pix []demosaic.PixRGB8, args demosaic.Args) error {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".bmp":
		return bayerio.WriteBMP8ToFile(fileName, pix, args.NRows, args.NCols)
	default:
		return fmt.Errorf("unsupported 8-bit RGB output extension %q, use .bmp", ext)
	}
}

func writeMono16(fileName string, samples []uint16, args demosaic.Args) error {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".pgm":
		return bayerio.WritePGM16ToFile(fileName, samples, args.NRows, args.NCols, args.MaxVal)
	case ".tif", ".tiff":
		return bayerio.WriteMonoTIFF16ToFile(fileName, samples, args.NRows, args.NCols, args.MaxVal)
	default:
		return fmt.Errorf("unsupported 16-bit mono output extension %q, use .pgm or .tif", ext)
	}
}
