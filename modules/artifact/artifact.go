// Generated image ready to upload
package artifact

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"sirherobrine23.com.br/go-bds/imagegen/modules/encoder"
	"sirherobrine23.com.br/go-bds/imagegen/modules/filename"
	"sirherobrine23.com.br/go-bds/imagegen/modules/generator"
)

var ErrInvalid = errors.New("invalid artifact")

// Artifact is one generated PNG with its file name.
// It is passed by value from generation to upload, never stored by app.
type Artifact struct {
	Filename  string    `json:"filename"`
	Payload   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Generate draw new image, encode to PNG and name it
func Generate(gen *generator.Generator) (*Artifact, error) {
	img, err := gen.Draw()
	if err != nil {
		return nil, err
	}
	payload, err := encoder.PNG(img)
	if err != nil {
		return nil, err
	}

	now := filename.Now()
	return &Artifact{
		Filename:  filename.Format(now),
		Payload:   payload,
		CreatedAt: now.UTC(),
	}, nil
}

// FromBase64 rebuild artifact sent back by a client
func FromBase64(name, content string) (*Artifact, error) {
	if !filename.Valid(name) {
		return nil, fmt.Errorf("%w: file name %q", ErrInvalid, name)
	}
	payload, _, err := encoder.DecodeBase64(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &Artifact{Filename: name, Payload: payload, CreatedAt: time.Now().UTC()}, nil
}

// FromPNG use existing png file, name must be a generated file name
func FromPNG(name string, payload []byte) (*Artifact, error) {
	if !filename.Valid(name) {
		return nil, fmt.Errorf("%w: file name %q", ErrInvalid, name)
	} else if _, err := encoder.CheckPNG(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &Artifact{Filename: name, Payload: payload, CreatedAt: time.Now().UTC()}, nil
}

func (a *Artifact) Base64() string { return encoder.Base64(a.Payload) }
func (a *Artifact) Size() string   { return humanize.Bytes(uint64(len(a.Payload))) }
func (a *Artifact) String() string { return fmt.Sprintf("%s (%s)", a.Filename, a.Size()) }
