package fakes

import (
	"context"
	"fmt"
	"sync"
)

type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string][]byte{}}
}

func (s *Storage) UploadBase64Image(ctx context.Context, encodedImage []byte, bucketName, fileName, fileExtension string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	key := fmt.Sprintf("%s/%s", bucketName, fileName)
	s.Objects[key] = encodedImage
	return "http://storage.local/" + key, nil
}
