package classifier

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, image.NewRGBA(image.Rect(0, 0, 12, 8)), nil))

	tests := []struct {
		name      string
		data      []byte
		wantErr   error
		wantWidth int
	}{
		{
			name:      "jpeg",
			data:      jpg.Bytes(),
			wantWidth: 12,
		},
		{
			name:    "empty",
			data:    nil,
			wantErr: ErrInvalidImage,
		},
		{
			name:    "pdf",
			data:    []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"),
			wantErr: ErrInvalidImage,
		},
		{
			name:    "truncated jpeg",
			data:    jpg.Bytes()[:16],
			wantErr: ErrImageDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeImage(context.Background(), tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, img)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, img.Bounds().Dx())
		})
	}
}
