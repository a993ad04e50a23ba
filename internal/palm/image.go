package palm

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// MaxImageBytes bounds uploaded images.
const MaxImageBytes = 20 << 20

// LoadImage reads an image file and detects its media type from content.
func LoadImage(path string) (Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Image{}, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return Image{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxImageBytes {
		return Image{}, fmt.Errorf("image %s is %d bytes, limit is %d", path, info.Size(), MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	return DecodeImage(data)
}

// DecodeImage sniffs the media type of data and rejects non-images.
func DecodeImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("image is empty")
	}
	mediaType := http.DetectContentType(data)
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return Image{}, fmt.Errorf("unsupported file type %s", mediaType)
	}
	return Image{MediaType: mediaType, Data: data}, nil
}
