package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func stubPresign(t *testing.T, url string, err error) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewClient := newS3ClientFromConfig
	origNewPresign := newS3PresignClient
	origPut := presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewClient
		newS3PresignClient = origNewPresign
		presignPutObject = origPut
	})

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if err != nil {
			return nil, err
		}
		return &v4.PresignedHTTPRequest{URL: url}, nil
	}
}

func TestStorageKey_Format(t *testing.T) {
	origNow := timeNow
	t.Cleanup(func() { timeNow = origNow })
	timeNow = func() time.Time { return time.UnixMilli(1700000000000) }

	key := StorageKey("u1", "photo.jpg")
	if key != "travel-images/u1/1700000000000_photo.jpg" {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestRequestUpload_Success(t *testing.T) {
	stubPresign(t, "http://minio/presigned-put", nil)

	s := NewStorageService(testConfig())

	key, uploadURL, publicURL, err := s.RequestUpload(context.Background(), "u1", "photo.jpg")
	if err != nil {
		t.Fatalf("RequestUpload error: %v", err)
	}
	if !strings.HasPrefix(key, "travel-images/u1/") || !strings.HasSuffix(key, "_photo.jpg") {
		t.Fatalf("unexpected key: %q", key)
	}
	if uploadURL != "http://minio/presigned-put" {
		t.Fatalf("unexpected upload URL: %q", uploadURL)
	}
	if publicURL != "http://127.0.0.1:9000/furari/"+key {
		t.Fatalf("unexpected public URL: %q", publicURL)
	}
}

func TestRequestUpload_PresignError(t *testing.T) {
	stubPresign(t, "", errors.New("presign failed"))

	s := NewStorageService(testConfig())

	_, _, _, err := s.RequestUpload(context.Background(), "u1", "photo.jpg")
	if err == nil {
		t.Fatal("expected error")
	}
}
