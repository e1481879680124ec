package aws

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadPrefix = "uploads"

type Archiver interface {
	Archive(ctx context.Context, upload Upload) (string, error)
}

// Upload is an original room photo tied to a generation record.
type Upload struct {
	GenerationID string
	ContentType  string
	Extension    string
	Style        string
	Data         []byte
}

type S3Archiver struct {
	S3Client *s3.Client
	Bucket   string
}

func NewS3Archiver(ctx context.Context, accessKey, secretKey, region, bucket string) (*S3Archiver, error) {
	creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(aws.NewCredentialsCache(creds)),
	)
	if err != nil {
		return nil, err
	}

	return &S3Archiver{
		S3Client: s3.NewFromConfig(awsCfg),
		Bucket:   bucket,
	}, nil
}

func ObjectKey(generationID, ext string) string {
	return fmt.Sprintf("%s/%s.%s", uploadPrefix, generationID, ext)
}

// Archive stores the original photo and returns its object key.
func (a *S3Archiver) Archive(ctx context.Context, upload Upload) (string, error) {
	key := ObjectKey(upload.GenerationID, upload.Extension)

	_, err := a.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(upload.Data),
		ContentType: aws.String(upload.ContentType),
		Metadata: map[string]string{
			"generation-id": upload.GenerationID,
			"style":         upload.Style,
		},
	})
	if err != nil {
		return "", fmt.Errorf("error archiving %s to %s: %w", key, a.Bucket, err)
	}

	return key, nil
}
