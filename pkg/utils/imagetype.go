package utils

import (
	"net/http"
	"path/filepath"
	"strings"
)

// extByMIME maps sniffed image MIME types to canonical file extensions.
var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// imageExts is the accepted set when sniffing is inconclusive (HEIC from
// iPhone cameras is the common case — the stdlib sniffer does not know it).
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".heic": true, ".tiff": true,
}

// ImageExt sniffs the payload and returns the canonical extension for the
// detected image type. Falls back to the original filename's extension
// when the sniffer reports a generic type but the name still looks like
// an image.
func ImageExt(data []byte, originalName string) (string, bool) {
	if ext, ok := extByMIME[http.DetectContentType(data)]; ok {
		return ext, true
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if imageExts[ext] {
		return ext, true
	}
	return "", false
}

// ImageMIME returns the Content-Type to serve for stored image bytes.
func ImageMIME(data []byte) string {
	return http.DetectContentType(data)
}
