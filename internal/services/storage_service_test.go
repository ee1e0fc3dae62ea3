package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/models"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D}

type fakeS3 struct {
	s3iface.S3API
	puts []*s3.PutObjectInput
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

type upload struct {
	name string
	data []byte
}

func fileHeaders(t *testing.T, uploads ...upload) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+u.name+`"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(u.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["images"]
}

func storageConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "8080", UploadDir: t.TempDir()},
		AWS:    config.AWSConfig{Region: "us-east-1", S3Bucket: "resona-media"},
	}
}

func TestUploadProductImagesLocal(t *testing.T) {
	cfg := storageConfig(t)
	svc, err := NewStorageService(cfg)
	require.NoError(t, err)
	svc.now = func() time.Time { return fixedNow }

	results, err := svc.UploadProductImages(context.Background(), fileHeaders(t, upload{"cover.PNG", pngBytes}))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, strings.HasPrefix(r.Key, "products/20240301_"))
	assert.True(t, strings.HasSuffix(r.Key, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/"+r.Key, r.URL)
	assert.Equal(t, int64(len(pngBytes)), r.Size)

	stored, err := os.ReadFile(filepath.Join(cfg.Server.UploadDir, r.Key))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	require.NoError(t, svc.DeleteFile(context.Background(), r.Key))
	_, err = os.Stat(filepath.Join(cfg.Server.UploadDir, r.Key))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadProductImagesRejectsBatch(t *testing.T) {
	tests := []struct {
		name    string
		uploads []upload
	}{
		{"extension", []upload{{"cover.png", pngBytes}, {"notes.txt", pngBytes}}},
		{"content", []upload{{"cover.png", pngBytes}, {"fake.jpg", []byte("not an image at all")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeS3{}
			svc := NewStorageServiceWithClient(storageConfig(t), client)

			_, err := svc.UploadProductImages(context.Background(), fileHeaders(t, tt.uploads...))
			assert.ErrorIs(t, err, models.ErrInvalidInput)
			assert.Empty(t, client.puts)
		})
	}
}

func TestUploadProductImagesS3(t *testing.T) {
	cfg := storageConfig(t)
	cfg.AWS.CloudFrontURL = "https://cdn.resona.example/"
	client := &fakeS3{}
	svc := NewStorageServiceWithClient(cfg, client)

	results, err := svc.UploadProductImages(context.Background(), fileHeaders(t,
		upload{"a.png", pngBytes},
		upload{"b.png", pngBytes},
	))
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Len(t, client.puts, 2)

	put := client.puts[0]
	assert.Equal(t, "resona-media", aws.StringValue(put.Bucket))
	assert.Equal(t, results[0].Key, aws.StringValue(put.Key))
	assert.Equal(t, "public-read", aws.StringValue(put.ACL))
	assert.Equal(t, "image/png", aws.StringValue(put.ContentType))

	body, err := io.ReadAll(put.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, body)
	assert.Equal(t, "https://cdn.resona.example/"+results[0].Key, results[0].URL)
}

func TestUploadProductImagesRequiresFiles(t *testing.T) {
	svc := NewStorageServiceWithClient(storageConfig(t), &fakeS3{})

	_, err := svc.UploadProductImages(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
