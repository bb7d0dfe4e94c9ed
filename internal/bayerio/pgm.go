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


// Package bayerio reads raw bayer rasters and writes demosaiced
// images to common containers. Raw sensor dumps travel as binary PGM
// (P5): single channel, 8-bit or 16-bit big-endian, which is exactly
// the shape the demosaic core consumes.
package bayerio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
)

// A Raster is a single-channel bayer readout plus its dimensions.
// Samples16 is set for deep rasters (maxVal > 255), Samples8 for
// 8-bit ones; the other slice stays nil.
type Raster struct {
	NRows, NCols int32
	MaxVal       uint16
	Samples16    []uint16
	Samples8     []uint8
}

// nextToken returns the next whitespace-delimited PGM header token,
// skipping '#' comments to end of line.
func nextToken(r *bufio.Reader) (string, error) {
	tok := make([]byte, 0, 8)
	inComment := false
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case inComment:
			if b == '\n' {
				inComment = false
			}
		case b == '#':
			inComment = true
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func headerInt(r *bufio.Reader, name string) (int, error) {
	tok, err := nextToken(r)
	if err != nil {
		return 0, fmt.Errorf("reading PGM %s: %w", name, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid PGM %s %q: %w", name, tok, err)
	}
	return v, nil
}

// ReadPGM parses a binary PGM (P5) raster. Rasters with maxval above
// 255 are stored big-endian two bytes per sample, as netpbm defines.
func ReadPGM(reader io.Reader) (*Raster, error) {
	r := bufio.NewReader(reader)

	magic, err := nextToken(r)
	if err != nil {
		return nil, fmt.Errorf("reading PGM magic: %w", err)
	}
	if magic != "P5" {
		return nil, fmt.Errorf("unsupported PGM magic %q, want P5", magic)
	}
	width, err := headerInt(r, "width")
	if err != nil {
		return nil, err
	}
	height, err := headerInt(r, "height")
	if err != nil {
		return nil, err
	}
	maxVal, err := headerInt(r, "maxval")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid PGM dimensions %dx%d", width, height)
	}
	if maxVal <= 0 || maxVal > 65535 {
		return nil, fmt.Errorf("invalid PGM maxval %d", maxVal)
	}

	res := &Raster{NRows: int32(height), NCols: int32(width), MaxVal: uint16(maxVal)}
	n := width * height
	if maxVal > 255 {
		buf := make([]byte, 2*n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("reading PGM samples: %w", err)
		}
		res.Samples16 = make([]uint16, n)
		for i := range res.Samples16 {
			res.Samples16[i] = binary.BigEndian.Uint16(buf[2*i:])
		}
	} else {
		res.Samples8 = make([]uint8, n)
		if _, err := io.ReadFull(r, res.Samples8); err != nil {
			return nil, fmt.Errorf("reading PGM samples: %w", err)
		}
	}
	return res, nil
}

// ReadPGMFromFile reads a binary PGM raster from the named file.
func ReadPGMFromFile(fileName string) (*Raster, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadPGM(file)
}

// WritePGM16 writes a 16-bit single-channel image as binary PGM.
func WritePGM16(writer io.Writer, samples []uint16, nRows, nCols int32, maxVal uint16) error {
	w := bufio.NewWriter(writer)
	fmt.Fprintf(w, "P5\n%d %d\n%d\n", nCols, nRows, maxVal)
	buf := make([]byte, 2)
	for _, s := range samples {
		binary.BigEndian.PutUint16(buf, s)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WritePGM8 writes an 8-bit single-channel image as binary PGM.
func WritePGM8(writer io.Writer, samples []uint8, nRows, nCols int32, maxVal uint16) error {
	w := bufio.NewWriter(writer)
	fmt.Fprintf(w, "P5\n%d %d\n%d\n", nCols, nRows, maxVal)
	if _, err := w.Write(samples); err != nil {
		return err
	}
	return w.Flush()
}

// WritePGM16ToFile writes a 16-bit single-channel image to the named file.
func WritePGM16ToFile(fileName string, samples []uint16, nRows, nCols int32, maxVal uint16) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	return WritePGM16(file, samples, nRows, nCols, maxVal)
}

// WritePGM8ToFile writes an 8-bit single-channel image to the named file.
func WritePGM8ToFile(fileName string, samples []uint8, nRows, nCols int32, maxVal uint16) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	return WritePGM8(file, samples, nRows, nCols, maxVal)
}
