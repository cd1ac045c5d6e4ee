package validation

import (
	"errors"
	"mime/multipart"
	"strings"
)

var (
	ErrFileSize     = errors.New("file size exceeds limit of 5MB")
	ErrFileType     = errors.New("invalid file type, only images are allowed")
	ErrFileRequired = errors.New("no file provided")
	ErrTooManyFiles = errors.New("a maximum of 10 images per submission is allowed")
)

const (
	MaxImageSize = 5 * 1024 * 1024 // 5MB
	MaxImages    = 10
)

func ValidateImage(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileRequired
	}

	if file.Size > MaxImageSize {
		return ErrFileSize
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return ErrFileType
	}

	return nil
}

func ValidateImages(files []*multipart.FileHeader) error {
	if len(files) > MaxImages {
		return ErrTooManyFiles
	}
	for _, f := range files {
		if err := ValidateImage(f); err != nil {
			return err
		}
	}
	return nil
}
