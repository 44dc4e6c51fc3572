package videosummary

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var extensionKinds = map[string]Kind{
	".mp4":  KindMP4,
	".m4v":  KindMP4,
	".mp3":  KindMP3,
	".wav":  KindWAV,
	".wave": KindWAV,
}

var mimeKinds = map[string]Kind{
	"video/mp4":      KindMP4,
	"audio/mpeg":     KindMP3,
	"audio/mp3":      KindMP3,
	"audio/mpeg3":    KindMP3,
	"audio/x-mpeg-3": KindMP3,
	"audio/wav":      KindWAV,
	"audio/wave":     KindWAV,
	"audio/x-wav":    KindWAV,
	"audio/vnd.wave": KindWAV,
}

// ResolveInput classifies source. http(s) URLs are returned as-is without
// any filesystem access; anything else must be an existing local media file.
func (c *implClient) ResolveInput(source string) (*Input, error) {
	if isRemote(source) {
		return &Input{
			URL:      source,
			External: true,
			YouTube:  isYouTube(source),
		}, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: source}
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: source}
	}

	kind, err := inferKind(source)
	if err != nil {
		return nil, err
	}

	return &Input{URL: source, Kind: kind}, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isYouTube(u string) bool {
	return strings.Contains(u, "youtube.com") || strings.Contains(u, "youtu.be")
}

// inferKind tries the extension, then the system MIME table, then sniffs
// the first 512 bytes of the file.
func inferKind(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := extensionKinds[ext]; ok {
		return kind, nil
	}

	contentType := mime.TypeByExtension(ext)
	if kind, ok := kindFromMIME(contentType); ok {
		return kind, nil
	}

	sniffed, err := sniff(path)
	if err != nil {
		return "", err
	}
	if kind, ok := kindFromMIME(sniffed); ok {
		return kind, nil
	}

	if contentType == "" {
		contentType = sniffed
	}
	return "", &UnsupportedKindError{Path: path, ContentType: contentType}
}

func kindFromMIME(contentType string) (Kind, bool) {
	if contentType == "" {
		return "", false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	kind, ok := mimeKinds[mediaType]
	return kind, ok
}

func sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
