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

package bayerio

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/abcouwer-jpl/demosaic"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Write a demosaiced 16-bit RGB image to 16-bit TIFF, stretching the
// sample range [0, maxVal] to the full 16-bit output range.
func WriteTIFF16ToFile(fileName string, pix []demosaic.PixRGB16, nRows, nCols int32, maxVal uint16) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return WriteTIFF16(writer, pix, nRows, nCols, maxVal)
}

// Write a demosaiced 16-bit RGB image to 16-bit TIFF, stretching the
// sample range [0, maxVal] to the full 16-bit output range.
func WriteTIFF16(writer io.Writer, pix []demosaic.PixRGB16, nRows, nCols int32, maxVal uint16) error {
	// convert pixels into Golang Image
	width, height := int(nCols), int(nRows)
	img := image.NewRGBA64(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	scale := 65535.0 / float64(maxVal)
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			p := pix[yoffset+x]
			c := color.RGBA64{
				uint16(float64(p.Red)*scale + 0.5),
				uint16(float64(p.Green)*scale + 0.5),
				uint16(float64(p.Blue)*scale + 0.5),
				65535,
			}
			img.SetRGBA64(x, y, c)
		}
	}

	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Uncompressed, Predictor: false})
}

// Write a demosaiced 16-bit mono image to 16-bit grayscale TIFF,
// stretching the sample range [0, maxVal] to the full 16-bit range.
func WriteMonoTIFF16ToFile(fileName string, samples []uint16, nRows, nCols int32, maxVal uint16) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return WriteMonoTIFF16(writer, samples, nRows, nCols, maxVal)
}

// Write a demosaiced 16-bit mono image to 16-bit grayscale TIFF,
// stretching the sample range [0, maxVal] to the full 16-bit range.
func WriteMonoTIFF16(writer io.Writer, samples []uint16, nRows, nCols int32, maxVal uint16) error {
	width, height := int(nCols), int(nRows)
	img := image.NewGray16(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	scale := 65535.0 / float64(maxVal)
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			gray := samples[yoffset+x]
			img.SetGray16(x, y, color.Gray16{uint16(float64(gray)*scale + 0.5)})
		}
	}

	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Uncompressed, Predictor: false})
}

// Write a demosaiced 8-bit RGB image as BMP.
func WriteBMP8ToFile(fileName string, pix []demosaic.PixRGB8, nRows, nCols int32) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return WriteBMP8(writer, pix, nRows, nCols)
}

// Write a demosaiced 8-bit RGB image as BMP.
func WriteBMP8(writer io.Writer, pix []demosaic.PixRGB8, nRows, nCols int32) error {
	width, height := int(nCols), int(nRows)
	img := image.NewRGBA(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			p := pix[yoffset+x]
			img.SetRGBA(x, y, color.RGBA{p.Red, p.Green, p.Blue, 255})
		}
	}

	return bmp.Encode(writer, img)
}
