package constants

import (
	"path/filepath"
	"strings"
)

// Enum values of the certification_media.file_type column.
const (
	FileTypeImage    = "image"
	FileTypeVideo    = "video"
	FileTypeAudio    = "audio"
	FileTypeDocument = "document"
)

func IsValidFileType(v string) bool {
	switch v {
	case FileTypeImage, FileTypeVideo, FileTypeAudio, FileTypeDocument:
		return true
	}
	return false
}

var (
	imageExt = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
		".avif": true, ".heic": true, ".heif": true, ".tif": true, ".tiff": true,
		".bmp": true, ".svg": true,
	}
	videoExt = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
		".mpeg": true, ".mpg": true, ".3gp": true, ".m4v": true,
	}
	audioExt = map[string]bool{
		".mp3": true, ".m4a": true, ".wav": true, ".flac": true, ".aac": true,
		".ogg": true, ".opus": true,
	}
	documentExt = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
		".ppt": true, ".pptx": true, ".txt": true, ".rtf": true, ".odt": true,
		".ods": true, ".odp": true, ".csv": true, ".json": true,
	}
	documentMime = map[string]bool{
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"text/plain": true,
		"text/csv":   true,
	}
)

// DetectFileType maps a content type and/or filename to one of the
// file_type enum values. Returns "" when nothing matches.
func DetectFileType(contentType, filename string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return FileTypeImage
	case strings.HasPrefix(ct, "video/"):
		return FileTypeVideo
	case strings.HasPrefix(ct, "audio/"):
		return FileTypeAudio
	case documentMime[ct]:
		return FileTypeDocument
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExt[ext]:
		return FileTypeImage
	case videoExt[ext]:
		return FileTypeVideo
	case audioExt[ext]:
		return FileTypeAudio
	case documentExt[ext]:
		return FileTypeDocument
	}
	return ""
}
