package onnx

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Layout is the memory order of the input tensor.
type Layout string

const (
	LayoutNCHW Layout = "NCHW"
	LayoutNHWC Layout = "NHWC"
)

const (
	defaultInputName  = "input"
	defaultOutputName = "output"
	defaultTopK       = 3
	channels          = 3
)

// Metadata describes a model file: tensor shapes, labels and input normalization.
// It is read from a JSON file next to the .onnx file.
type Metadata struct {
	InputName   string     `json:"input_name"`
	OutputName  string     `json:"output_name"`
	InputShape  []int64    `json:"input_shape"`
	OutputShape []int64    `json:"output_shape"`
	Labels      []string   `json:"labels"`
	ImageSize   int        `json:"image_size"`
	Layout      Layout     `json:"layout"`
	Mean        [3]float32 `json:"mean"`
	Std         [3]float32 `json:"std"`
	TopK        int        `json:"top_k"`
}

func ReadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return ParseMetadata(data)
}

func ParseMetadata(data []byte) (Metadata, error) {
	var metadata Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return Metadata{}, fmt.Errorf("json.Unmarshal() > %w", err)
	}
	metadata.applyDefaults()
	if err := metadata.validate(); err != nil {
		return Metadata{}, err
	}
	return metadata, nil
}

func (m *Metadata) applyDefaults() {
	if m.InputName == "" {
		m.InputName = defaultInputName
	}
	if m.OutputName == "" {
		m.OutputName = defaultOutputName
	}
	if m.Layout == "" {
		m.Layout = LayoutNCHW
	}
	if m.TopK <= 0 {
		m.TopK = defaultTopK
	}
	for i := range m.Std {
		if m.Std[i] == 0 {
			m.Std[i] = 1
		}
	}
}

func (m Metadata) validate() error {
	if m.ImageSize <= 0 {
		return errors.New("image_size must be positive")
	}
	if m.Layout != LayoutNCHW && m.Layout != LayoutNHWC {
		return fmt.Errorf("unknown layout: %s", m.Layout)
	}
	if want := int64(channels * m.ImageSize * m.ImageSize); elements(m.InputShape) != want {
		return fmt.Errorf("input_shape %v does not hold a %dx%d RGB image", m.InputShape, m.ImageSize, m.ImageSize)
	}
	if len(m.Labels) == 0 {
		return errors.New("labels are empty")
	}
	if got := elements(m.OutputShape); got != int64(len(m.Labels)) {
		return fmt.Errorf("output_shape %v has %d scores for %d labels", m.OutputShape, got, len(m.Labels))
	}
	return nil
}

func elements(shape []int64) int64 {
	if len(shape) == 0 {
		return 0
	}
	n := int64(1)
	for _, dim := range shape {
		n *= dim
	}
	return n
}
