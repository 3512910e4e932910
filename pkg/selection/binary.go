package selection

import (
	"path/filepath"
	"strings"
)

// BinaryExtensions lists extensions whose files are never treated as text.
// Classification is by extension only.
var BinaryExtensions = map[string]bool{
	// images
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true,
	".webp": true, ".tiff": true, ".psd": true,
	// video
	".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true, ".mkv": true,
	// audio
	".mp3": true, ".wav": true, ".flac": true, ".aac": true, ".ogg": true,
	// documents
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	// archives
	".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".jar": true, ".war": true,
	// compiled and object artifacts
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".o": true, ".a": true, ".obj": true,
	".lib": true, ".wasm": true, ".pyc": true, ".pyo": true, ".class": true,
	// fonts
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
}

// IsBinary reports whether path has a known binary extension. Files with
// an unknown or missing extension are text.
func IsBinary(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return BinaryExtensions[ext]
}
