// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"image"
	"unsafe"

	"golang.org/x/image/draw"
)

// Float32Bytes reslices floats into bytes in native byte order, the
// layout GL expects vertex data to be uploaded in. The result shares
// memory with data.
func Float32Bytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	const m = 0x7fffffff
	return (*[m]byte)(unsafe.Pointer(&data[0]))[: len(data)*4 : len(data)*4]
}

// Uint32Bytes reslices index data into bytes in native byte order. The
// result shares memory with data.
func Uint32Bytes(data []uint32) []byte {
	if len(data) == 0 {
		return nil
	}
	const m = 0x7fffffff
	return (*[m]byte)(unsafe.Pointer(&data[0]))[: len(data)*4 : len(data)*4]
}

// BytesFloat32 reslices bytes read back from a buffer into floats. The
// length of data must be a multiple of four.
func BytesFloat32(data []byte) []float32 {
	if len(data) < 4 {
		return nil
	}
	const m = 0x7fffffff
	return (*[m / 4]float32)(unsafe.Pointer(&data[0]))[: len(data)/4 : len(data)/4]
}

// GetPixels transforms a given image into tightly packed rows of the
// given number of channels (1 to 4, gray, gray+alpha, RGB, RGBA)
// by drawing the decoded image onto a controlled canvas. Alpha is not
// premultiplied.
func GetPixels(img image.Image, channels int) []uint8 {
	bounds := img.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	if channels == 4 {
		return canvas.Pix
	}

	pixels := make([]uint8, 0, bounds.Dx()*bounds.Dy()*channels)
	for idx := 0; idx < len(canvas.Pix); idx += 4 {
		px := canvas.Pix[idx : idx+4]
		switch channels {
		case 1:
			pixels = append(pixels, luma(px))
		case 2:
			pixels = append(pixels, luma(px), px[3])
		default:
			pixels = append(pixels, px[0], px[1], px[2])
		}
	}
	return pixels
}

func luma(px []uint8) uint8 {
	// ITU-R 601-2, as image/color does for Gray
	y := (19595*uint32(px[0]) + 38470*uint32(px[1]) + 7471*uint32(px[2]) + 1<<15) >> 16
	return uint8(y)
}
