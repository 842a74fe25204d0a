package domain

import (
	"path/filepath"
	"strings"
)

// Category groups files by extension for display coloring.
type Category int

const (
	CategoryOther Category = iota
	CategoryDirectory
	CategoryVideo
	CategoryImage
	CategoryAudio
	CategoryArchive
	CategoryDocument
	CategoryCode
)

func (category Category) String() string {
	switch category {
	case CategoryDirectory:
		return "directory"
	case CategoryVideo:
		return "video"
	case CategoryImage:
		return "image"
	case CategoryAudio:
		return "audio"
	case CategoryArchive:
		return "archive"
	case CategoryDocument:
		return "document"
	case CategoryCode:
		return "code"
	default:
		return "other"
	}
}

var categoryByExt = map[string]Category{
	"mp4": CategoryVideo, "mkv": CategoryVideo, "avi": CategoryVideo,
	"mov": CategoryVideo, "wmv": CategoryVideo, "flv": CategoryVideo,
	"webm": CategoryVideo, "m4v": CategoryVideo, "mpeg": CategoryVideo,
	"mpg": CategoryVideo,

	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "bmp": CategoryImage, "svg": CategoryImage,
	"webp": CategoryImage, "ico": CategoryImage, "tiff": CategoryImage,
	"raw": CategoryImage,

	"mp3": CategoryAudio, "flac": CategoryAudio, "wav": CategoryAudio,
	"aac": CategoryAudio, "ogg": CategoryAudio, "wma": CategoryAudio,
	"m4a": CategoryAudio, "opus": CategoryAudio,

	"zip": CategoryArchive, "tar": CategoryArchive, "gz": CategoryArchive,
	"bz2": CategoryArchive, "xz": CategoryArchive, "7z": CategoryArchive,
	"rar": CategoryArchive, "zst": CategoryArchive, "lz4": CategoryArchive,

	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"txt": CategoryDocument, "rtf": CategoryDocument, "odt": CategoryDocument,
	"xls": CategoryDocument, "xlsx": CategoryDocument, "ppt": CategoryDocument,
	"pptx": CategoryDocument,

	"rs": CategoryCode, "py": CategoryCode, "js": CategoryCode,
	"ts": CategoryCode, "c": CategoryCode, "cpp": CategoryCode,
	"h": CategoryCode, "java": CategoryCode, "go": CategoryCode,
	"rb": CategoryCode, "php": CategoryCode, "sh": CategoryCode,
	"bash": CategoryCode, "zsh": CategoryCode, "json": CategoryCode,
	"yaml": CategoryCode, "yml": CategoryCode, "toml": CategoryCode,
	"xml": CategoryCode, "html": CategoryCode, "css": CategoryCode,
	"scss": CategoryCode, "md": CategoryCode, "sql": CategoryCode,
}

// Categorize maps an entry name to its display category.
func Categorize(name string, kind Kind) Category {
	if kind == KindDir {
		return CategoryDirectory
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if category, ok := categoryByExt[ext]; ok {
		return category
	}
	return CategoryOther
}
