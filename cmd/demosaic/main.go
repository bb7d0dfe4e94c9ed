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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"github.com/valyala/fastrand"

	"github.com/abcouwer-jpl/demosaic"
	"github.com/abcouwer-jpl/demosaic/internal/job"
	"github.com/abcouwer-jpl/demosaic/internal/logx"
	"github.com/abcouwer-jpl/demosaic/internal/rest"
)

const version = "0.1.0"

var totalMiBs = memory.TotalMemory() / 1024 / 1024

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var out = flag.String("out", "%auto", "save output to `file`. `%auto` replaces the input suffix per flavor (.tif, .bmp or .pgm)")
var log = flag.String("log", "", "save log output to `file` in addition to stdout")

var flavor = flag.String("flavor", "rgb16", "output flavor, one of rgb16, rgb8, rgb16to8, mono16, mono8, mono16to8")
var maxVal = flag.Uint("max", 0, "maximum sample value of the raster, 0=take from the PGM header")
var shift = flag.Uint("shift", 0, "right shift for the 16to8 flavors, 0=derive from max")
var coefR = flag.Float64("coefR", demosaic.Rec601.Red, "red weight for mono luma projection")
var coefG = flag.Float64("coefG", demosaic.Rec601.Green, "green weight for mono luma projection")
var coefB = flag.Float64("coefB", demosaic.Rec601.Blue, "blue weight for mono luma projection")
var workers = flag.Int("workers", 0, "number of rows to demosaic in parallel, 0=all hardware threads")

var port = flag.Int("port", 8080, "port for the REST server")
var chroot = flag.String("chroot", "", "change filesystem root to `dir` before serving (requires root)")
var setuid = flag.Int("setuid", -1, "change to this user id before serving, -1=no change")

var benchRows = flag.Int("benchRows", 1024, "raster height for the bench command")
var benchCols = flag.Int("benchCols", 1024, "raster width for the bench command")
var benchIters = flag.Int("benchIters", 10, "iterations per flavor for the bench command")

func main() {
	start := time.Now()
	flag.Usage = func() {
		fmt.Printf(`Demosaic Copyright (c) 2020 The demosaic authors
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (convert|bench|serve|legal|version) (raster0.pgm ... rastern.pgm)

Commands:
  convert Demosaic the given bayer rasters into the selected flavor
  bench   Measure demosaicing throughput on random rasters
  serve   Run the REST API server
  legal   Show license and attribution information
  version Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *log != "" {
		if err := logx.AlsoToFile(*log); err != nil {
			logx.Fatalf("Unable to open logfile '%s'\n", *log)
		}
	}

	// Enable CPU profiling if flagged
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logx.Fatal("Could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logx.Fatal("Could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return
	}

	var err error
	switch args[0] {
	case "convert":
		err = cmdConvert(args[1:])

	case "bench":
		err = cmdBench()

	case "serve":
		if err = rest.MakeSandbox(*chroot, *setuid); err != nil {
			break
		}
		logx.Printf("Serving on port %d\n", *port)
		err = rest.Serve(*port)

	case "legal":
		cmdLegal()

	case "version":
		logx.Printf("Version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		logx.Printf("Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	elapsed := time.Since(start)
	logx.Printf("\nDone after %v\n", elapsed)

	// Store memory profile if flagged
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			logx.Fatal("Could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			logx.Fatal("Could not write allocation profile: ", err)
		}
	}

	if err != nil {
		logx.Printf("Error: %s\n", err.Error())
		os.Exit(-1)
	}
	logx.Sync()
}

// outExt returns the default output suffix for a flavor.
func outExt(flavor string) string {
	switch flavor {
	case job.FlavorRGB16:
		return ".tif"
	case job.FlavorRGB8, job.FlavorRGB16To8:
		return ".bmp"
	default:
		return ".pgm"
	}
}

// Demosaic each input raster into its own output file.
func cmdConvert(inputs []string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("convert needs at least one input raster")
	}
	coefs := demosaic.LumaCoefs{Red: *coefR, Green: *coefG, Blue: *coefB}
	for _, input := range inputs {
		output := *out
		if output == "%auto" || len(inputs) > 1 {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + outExt(*flavor)
		}
		j := job.Job{
			Input:   input,
			Output:  output,
			Flavor:  *flavor,
			MaxVal:  uint16(*maxVal),
			RShift:  int32(*shift),
			Coefs:   &coefs,
			Workers: *workers,
		}
		if err := j.Run(logx.Writer{}); err != nil {
			return err
		}
	}
	return nil
}

// Measure single-threaded throughput of every flavor on one random
// 12-bit raster.
func cmdBench() error {
	nRows, nCols := int32(*benchRows), int32(*benchCols)
	logx.Printf("CPU is %s with %d threads, physical memory is %d MiB\n",
		cpuid.CPU.BrandName, runtime.GOMAXPROCS(0), totalMiBs)
	logx.Printf("Benchmarking %dx%d raster, %d iterations per flavor\n", nCols, nRows, *benchIters)

	rng := fastrand.RNG{}
	rng.Seed(uint32(time.Now().UnixNano()))
	bayer := make([]uint16, int(nRows)*int(nCols))
	for i := range bayer {
		bayer[i] = uint16(rng.Uint32n(4096))
	}
	bayer8 := make([]uint8, len(bayer))
	for i, s := range bayer {
		bayer8[i] = uint8(s >> 4)
	}
	args := demosaic.Args{NRows: nRows, NCols: nCols, MaxVal: 4095, RShift: 4, Coefs: demosaic.Rec601}
	args8 := demosaic.Args{NRows: nRows, NCols: nCols, MaxVal: 255, Coefs: demosaic.Rec601}

	n := int(nRows) * int(nCols)
	rgb16 := make([]demosaic.PixRGB16, n)
	rgb8 := make([]demosaic.PixRGB8, n)
	mono16 := make([]uint16, n)
	mono8 := make([]uint8, n)

	benches := []struct {
		name string
		fn   func()
	}{
		{job.FlavorRGB16, func() { demosaic.RGB16(bayer, &args, rgb16) }},
		{job.FlavorRGB8, func() { demosaic.RGB8(bayer8, &args8, rgb8) }},
		{job.FlavorRGB16To8, func() { demosaic.RGB16To8(bayer, &args, rgb8) }},
		{job.FlavorMono16, func() { demosaic.Mono16(bayer, &args, mono16) }},
		{job.FlavorMono8, func() { demosaic.Mono8(bayer8, &args8, mono8) }},
		{job.FlavorMono16To8, func() { demosaic.Mono16To8(bayer, &args, mono8) }},
	}
	for _, b := range benches {
		start := time.Now()
		for i := 0; i < *benchIters; i++ {
			b.fn()
		}
		elapsed := time.Since(start)
		mPix := float64(n) * float64(*benchIters) / 1e6
		logx.Printf("%-10s %8.1f MPix in %8v, %6.1f MPix/s\n",
			b.name, mPix, elapsed, mPix/elapsed.Seconds())
	}
	return nil
}

func cmdLegal() {
	logx.Print(`Demosaic is Copyright (c) 2020 The demosaic authors
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.
The binary version of this program uses several open source libraries and components, which come with their own licensing terms. See below for a list of attributions.

ATTRIBUTIONS

A1. https://github.com/gonum/gonum is Copyright (c) 2013 The Gonum Authors. All rights reserved.
Licensed under the BSD 3-clause license.

A2. https://github.com/pbnjay/memory is Copyright (c) 2017, Jeremy Jay. All rights reserved.
Licensed under the BSD 3-clause license.

A3. https://github.com/valyala/fastrand is Copyright (c) 2017 Aliaksandr Valialkin.
Licensed under the MIT license.

A4. https://github.com/klauspost/cpuid is Copyright (c) 2015 Klaus Post.
Licensed under the MIT license.

A5. https://github.com/lucasb-eyer/go-colorful is Copyright (c) 2013 Lucas Beyer.
Licensed under the MIT license.

A6. https://github.com/gin-gonic/gin is Copyright (c) 2014 Manuel Martinez-Almeida.
Licensed under the MIT license.

A7. https://golang.org/x/image is Copyright (c) 2009 The Go Authors. All rights reserved.
Licensed under the BSD 3-clause license.
`)
}
