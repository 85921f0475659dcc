package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type AvatarStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewAvatarStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*AvatarStorage, error) {
	if err := storage.ensureBucket(context.Background(), bucketName); err != nil {
		return nil, err
	}
	return &AvatarStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

func (s *AvatarStorage) UploadAvatar(
	ctx context.Context,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (objectKey string, err error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}

	objectKey = fmt.Sprintf("avatars/%s%s", uuid.New().String(), ext)

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err = s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *AvatarStorage) GetAvatarURL(ctx context.Context, objectKey string) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignedTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

// DeleteAvatar removes the object behind a previously issued avatar URL.
// URLs that do not point into the avatar bucket are ignored.
func (s *AvatarStorage) DeleteAvatar(ctx context.Context, avatarURL string) error {
	u, err := url.Parse(avatarURL)
	if err != nil {
		return err
	}
	prefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return nil
	}
	objectKey := strings.TrimPrefix(u.Path, prefix)
	return s.storage.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
