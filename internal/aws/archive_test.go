package aws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "uploads/abc-123.png", ObjectKey("abc-123", "png"))
	assert.Equal(t, "uploads/abc-123.jpg", ObjectKey("abc-123", "jpg"))
}

func TestNewS3Archiver(t *testing.T) {
	a, err := NewS3Archiver(context.Background(), "AKIDEXAMPLE", "secret", "us-east-1", "room-uploads")
	require.NoError(t, err)
	assert.Equal(t, "room-uploads", a.Bucket)
	assert.NotNil(t, a.S3Client)
}
