package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/furari-app/furari/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	timeNow = time.Now
)

// uploadURLValidity bounds how long a presigned PUT stays usable.
const uploadURLValidity = 15 * time.Minute

// StorageService issues presigned PUT URLs for image uploads against an
// S3-compatible backend. Clients upload directly; the server never
// proxies image bytes.
type StorageService struct {
	config *sc.Config
}

func NewStorageService(cfg *sc.Config) *StorageService {
	return &StorageService{config: cfg}
}

// StorageKey builds the object key for an upload. Keys are namespaced per
// owner and prefixed with the upload instant so listing a prefix yields
// chronological order.
func StorageKey(ownerID, fileName string) string {
	return fmt.Sprintf("travel-images/%s/%d_%s", ownerID, timeNow().UnixMilli(), fileName)
}

func (s *StorageService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// RequestUpload returns the object key, a short-lived presigned PUT URL for
// the bytes, and the long-lived public URL the object will be readable at.
func (s *StorageService) RequestUpload(ctx context.Context, ownerID, fileName string) (string, string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", "", err
	}

	bucket := s.config.S3Bucket
	key := StorageKey(ownerID, fileName)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(uploadURLValidity))
	if err != nil {
		return "", "", "", err
	}

	return key, req.URL, s.publicURL(key), nil
}

func (s *StorageService) publicURL(key string) string {
	return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key
}
