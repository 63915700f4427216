package swarm

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ImageSource supplies a decoded image for a slot. Decode is called once,
// on a background goroutine, when the slot is first registered;
// re-registering a slot reuses the previous result.
type ImageSource interface {
	Decode() (image.Image, error)
}

// SourceImage wraps an already-decoded image.
func SourceImage(img image.Image) ImageSource {
	return imageSource{img: img}
}

// SourceBytes decodes an encoded image (PNG or JPEG) from memory.
func SourceBytes(data []byte) ImageSource {
	return bytesSource{data: data}
}

// SourceFile reads and decodes an encoded image from disk.
func SourceFile(path string) ImageSource {
	return fileSource{path: path}
}

type imageSource struct {
	img image.Image
}

func (s imageSource) Decode() (image.Image, error) {
	if s.img == nil {
		return nil, fmt.Errorf("decode image: nil image")
	}
	return s.img, nil
}

type bytesSource struct {
	data []byte
}

func (s bytesSource) Decode() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

type fileSource struct {
	path string
}

func (s fileSource) Decode() (image.Image, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read image %q: %w", s.path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", s.path, err)
	}
	return img, nil
}
