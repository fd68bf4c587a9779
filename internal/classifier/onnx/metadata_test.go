package onnx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Metadata
		wantErr string
	}{
		{
			name: "defaults",
			data: `{"input_shape":[1,3,2,2],"output_shape":[1,2],"labels":["cat","dog"],"image_size":2}`,
			want: Metadata{
				InputName:   "input",
				OutputName:  "output",
				InputShape:  []int64{1, 3, 2, 2},
				OutputShape: []int64{1, 2},
				Labels:      []string{"cat", "dog"},
				ImageSize:   2,
				Layout:      LayoutNCHW,
				Std:         [3]float32{1, 1, 1},
				TopK:        3,
			},
		},
		{
			name: "mobilenet style",
			data: `{"input_name":"images","output_name":"logits","input_shape":[1,2,2,3],"output_shape":[1,3],
				"labels":["a","b","c"],"image_size":2,"layout":"NHWC","mean":[0.5,0.5,0.5],"std":[0.5,0.5,0.5],"top_k":5}`,
			want: Metadata{
				InputName:   "images",
				OutputName:  "logits",
				InputShape:  []int64{1, 2, 2, 3},
				OutputShape: []int64{1, 3},
				Labels:      []string{"a", "b", "c"},
				ImageSize:   2,
				Layout:      LayoutNHWC,
				Mean:        [3]float32{0.5, 0.5, 0.5},
				Std:         [3]float32{0.5, 0.5, 0.5},
				TopK:        5,
			},
		},
		{
			name:    "invalid json",
			data:    `{"labels":`,
			wantErr: "json.Unmarshal()",
		},
		{
			name:    "missing image size",
			data:    `{"input_shape":[1,3,2,2],"output_shape":[1,2],"labels":["cat","dog"]}`,
			wantErr: "image_size must be positive",
		},
		{
			name:    "unknown layout",
			data:    `{"input_shape":[1,3,2,2],"output_shape":[1,2],"labels":["cat","dog"],"image_size":2,"layout":"CHWN"}`,
			wantErr: "unknown layout: CHWN",
		},
		{
			name:    "input shape mismatch",
			data:    `{"input_shape":[1,3,4,4],"output_shape":[1,2],"labels":["cat","dog"],"image_size":2}`,
			wantErr: "does not hold a 2x2 RGB image",
		},
		{
			name:    "label count mismatch",
			data:    `{"input_shape":[1,3,2,2],"output_shape":[1,1001],"labels":["cat","dog"],"image_size":2}`,
			wantErr: "has 1001 scores for 2 labels",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetadata([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mobilenet_v2_1.0.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input_shape":[1,3,1,1],"output_shape":[1],"labels":["x"],"image_size":1}`), 0o644))

	got, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got.Labels)

	_, err = ReadMetadata(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
