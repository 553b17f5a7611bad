// Encode drawn surface to PNG and transport strings
package encoder

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
)

// Bytes sent to base64 encoder per write
const ChunkSize = 0x8000

var ErrEmptySurface = errors.New("cannot encode empty surface")

// Lossless encoder, compression fixed to best
var pngEncoder = &png.Encoder{CompressionLevel: png.BestCompression}

// PNG serialize img, fails with [ErrEmptySurface] if img is nil or have no pixels
func PNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptySurface
	}

	var buff bytes.Buffer
	if err := pngEncoder.Encode(&buff, img); err != nil {
		return nil, fmt.Errorf("cannot encode png: %w", err)
	} else if buff.Len() == 0 {
		return nil, ErrEmptySurface
	}
	return buff.Bytes(), nil
}

// Base64To write payload as standard base64 to w in [ChunkSize] chunks
func Base64To(w io.Writer, payload []byte) error {
	enc := base64.NewEncoder(base64.StdEncoding, w)
	for len(payload) > 0 {
		n := min(ChunkSize, len(payload))
		if _, err := enc.Write(payload[:n]); err != nil {
			return err
		}
		payload = payload[n:]
	}
	return enc.Close()
}

// Base64 return payload as standard base64 string
func Base64(payload []byte) string {
	var out strings.Builder
	out.Grow(base64.StdEncoding.EncodedLen(len(payload)))
	Base64To(&out, payload) // strings.Builder never fails
	return out.String()
}

// DecodeBase64 reverse [Base64] and check payload is PNG
func DecodeBase64(content string) ([]byte, image.Config, error) {
	payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
	if err != nil {
		return nil, image.Config{}, fmt.Errorf("invalid base64 content: %w", err)
	} else if len(payload) == 0 {
		return nil, image.Config{}, ErrEmptySurface
	}

	config, err := CheckPNG(payload)
	if err != nil {
		return nil, image.Config{}, err
	}
	return payload, config, nil
}

// CheckPNG read png header from payload
func CheckPNG(payload []byte) (image.Config, error) {
	if len(payload) == 0 {
		return image.Config{}, ErrEmptySurface
	}
	config, err := png.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return image.Config{}, fmt.Errorf("content is not png: %w", err)
	}
	return config, nil
}
