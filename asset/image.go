// SPDX-License-Identifier: Unlicense OR MIT

package asset

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Checkerboard returns a size×size image of cells×cells squares
// alternating between a and b, starting with a at the top left.
func Checkerboard(size, cells int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cells <= 0 {
		cells = 1
	}
	ua, ub := image.NewUniform(a), image.NewUniform(b)
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			r := image.Rect(x*size/cells, y*size/cells, (x+1)*size/cells, (y+1)*size/cells)
			src := ua
			if (x+y)%2 == 1 {
				src = ub
			}
			draw.Draw(img, r, src, image.Point{}, draw.Src)
		}
	}
	return img
}

// Resize scales img to width×height. Smooth selects Catmull-Rom
// filtering over nearest neighbor.
func Resize(img image.Image, width, height int, smooth bool) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	var s draw.Scaler = draw.NearestNeighbor
	if smooth {
		s = draw.CatmullRom
	}
	s.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Pixels returns the pixels of img as tightly packed, non premultiplied
// RGBA bytes, the layout of gpu.TextureFormatRGBA8.
func Pixels(img image.Image) []byte {
	if n, ok := img.(*image.NRGBA); ok && tight(n.Rect, n.Stride) {
		return n.Pix
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix
}

func tight(r image.Rectangle, stride int) bool {
	return r.Min == (image.Point{}) && stride == 4*r.Dx()
}
