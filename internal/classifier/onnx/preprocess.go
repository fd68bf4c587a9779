package onnx

import (
	"image"

	"github.com/disintegration/imaging"
)

// packImage resizes img to the model's input size and lays out its normalized
// RGB values in the given order. Alpha is dropped.
func packImage(img image.Image, metadata Metadata) []float32 {
	size := metadata.ImageSize
	resized := imaging.Resize(img, size, size, imaging.Lanczos)

	plane := size * size
	data := make([]float32, channels*plane)
	for y := 0; y < size; y++ {
		row := resized.Pix[y*resized.Stride:]
		for x := 0; x < size; x++ {
			pixel := row[x*4 : x*4+channels]
			for c := 0; c < channels; c++ {
				value := (float32(pixel[c])/255.0 - metadata.Mean[c]) / metadata.Std[c]
				switch metadata.Layout {
				case LayoutNHWC:
					data[(y*size+x)*channels+c] = value
				default:
					data[c*plane+y*size+x] = value
				}
			}
		}
	}
	return data
}
