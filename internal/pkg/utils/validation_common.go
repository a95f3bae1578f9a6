package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var allowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// DecodeBase64Image decodes a data URL such as data:image/png;base64,AAAA and returns
// the raw bytes together with a file extension derived from the media type.
func DecodeBase64Image(encodedImage string) ([]byte, string, error) {
	parts := strings.SplitN(encodedImage, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") || !strings.HasSuffix(parts[0], ";base64") {
		return nil, "", errors.New("invalid base64 image")
	}

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", err
	}

	contentType := strings.TrimSuffix(strings.TrimPrefix(parts[0], "data:"), ";base64")
	extension, err := imageExtension(contentType)
	if err != nil {
		return nil, "", err
	}
	return data, extension, nil
}

func ValidateImageSize(data []byte, maxSizeInMegabytes int) error {
	if len(data) > maxSizeInMegabytes*1024*1024 {
		return fmt.Errorf("image exceeds maximum allowed size of %dMB", maxSizeInMegabytes)
	}
	return nil
}

func imageExtension(contentType string) (string, error) {
	if contentType == "image/jpeg" {
		return ".jpg", nil
	}
	extensions, err := mime.ExtensionsByType(contentType)
	if err != nil {
		return "", err
	}
	for _, extension := range extensions {
		for _, allowed := range allowedImageExtensions {
			if extension == allowed {
				return extension, nil
			}
		}
	}
	return "", fmt.Errorf("invalid image type %s, allowed formats are: %s", contentType, strings.Join(allowedImageExtensions, ", "))
}

// ValidateUrlParamID checks that a path parameter is a well formed document identifier.
func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}

	if !primitive.IsValidObjectID(param) {
		return fmt.Errorf("%q is not a valid identifier", param)
	}

	return nil
}
