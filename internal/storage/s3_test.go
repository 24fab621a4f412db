package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platformapi/internal/config"
)

type fakeS3 struct {
	headOut *s3.HeadObjectOutput
	headErr error

	putIn  *s3.PutObjectInput
	getIn  *s3.GetObjectInput
	putErr error
}

func (f *fakeS3) HeadObject(_ context.Context, _ *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return f.headOut, f.headErr
}

func (f *fakeS3) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.putIn = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &v4.PresignedHTTPRequest{
		URL:    "https://bucket.s3.sa-east-1.amazonaws.com/" + aws.ToString(in.Key) + "?X-Amz-Signature=sig",
		Method: http.MethodPut,
		SignedHeader: http.Header{
			"Host":                         {"bucket.s3.sa-east-1.amazonaws.com"},
			"Content-Type":                 {aws.ToString(in.ContentType)},
			"X-Amz-Server-Side-Encryption": {string(in.ServerSideEncryption)},
		},
	}, nil
}

func (f *fakeS3) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.getIn = in
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3.sa-east-1.amazonaws.com/" + aws.ToString(in.Key), Method: http.MethodGet}, nil
}

func newFakeS3Storage(f *fakeS3, sse bool) *s3Storage {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &s3Storage{head: f, presign: f, bucket: "bucket", sseKMS: sse, now: func() time.Time { return fixed }}
}

func TestS3_PresignUpload(t *testing.T) {
	f := &fakeS3{}
	st := newFakeS3Storage(f, true)

	target, err := st.PresignUpload(context.Background(), "documents/u1/abc.pdf", UploadPolicy{
		ContentType:  "application/pdf",
		MaxSizeBytes: 10 << 20,
		Size:         2048,
		Expiry:       5 * time.Minute,
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, target.Method)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC), target.ExpiresAt)
	assert.Equal(t, "application/pdf", target.Headers["Content-Type"])
	assert.Equal(t, "aws:kms", target.Headers["X-Amz-Server-Side-Encryption"])
	assert.NotContains(t, target.Headers, "Host")

	require.NotNil(t, f.putIn)
	assert.Equal(t, "bucket", aws.ToString(f.putIn.Bucket))
	assert.Equal(t, int64(2048), aws.ToInt64(f.putIn.ContentLength))
	assert.Equal(t, types.ServerSideEncryptionAwsKms, f.putIn.ServerSideEncryption)
}

func TestS3_PresignUpload_WithoutKMSOrSize(t *testing.T) {
	f := &fakeS3{}
	st := newFakeS3Storage(f, false)

	_, err := st.PresignUpload(context.Background(), "public/users/u1/profile-photo/x.png", UploadPolicy{
		ContentType:  "image/png",
		MaxSizeBytes: 5 << 20,
		Expiry:       time.Minute,
	})

	require.NoError(t, err)
	assert.Nil(t, f.putIn.ContentLength)
	assert.Empty(t, f.putIn.ServerSideEncryption)
}

func TestS3_PresignUpload_Error(t *testing.T) {
	f := &fakeS3{putErr: errors.New("no credentials")}
	st := newFakeS3Storage(f, true)

	_, err := st.PresignUpload(context.Background(), "k", UploadPolicy{ContentType: "image/png", MaxSizeBytes: 1, Expiry: time.Minute})

	assert.ErrorContains(t, err, "presign put object")
}

func TestS3_Stat(t *testing.T) {
	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		headOut      *s3.HeadObjectOutput
		headErr      error
		wantNotFound bool
		wantErr      bool
	}{
		{
			name: "present",
			headOut: &s3.HeadObjectOutput{
				ContentLength: aws.Int64(2048),
				ContentType:   aws.String("application/pdf"),
				ETag:          aws.String(`"e"`),
				LastModified:  aws.Time(modified),
			},
		},
		{name: "typed not found", headErr: &types.NotFound{}, wantNotFound: true},
		{name: "no such key", headErr: &types.NoSuchKey{}, wantNotFound: true},
		{name: "generic api not found", headErr: &smithy.GenericAPIError{Code: "NotFound"}, wantNotFound: true},
		{name: "access denied", headErr: &smithy.GenericAPIError{Code: "AccessDenied"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newFakeS3Storage(&fakeS3{headOut: tt.headOut, headErr: tt.headErr}, true)

			info, err := st.Stat(context.Background(), "documents/u1/abc.pdf")

			switch {
			case tt.wantNotFound:
				assert.ErrorIs(t, err, ErrObjectNotFound)
			case tt.wantErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrObjectNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(2048), info.Size)
				assert.Equal(t, "application/pdf", info.ContentType)
				assert.Equal(t, modified, info.LastModified)
			}
		})
	}
}

func TestS3_PresignGet(t *testing.T) {
	f := &fakeS3{}
	st := newFakeS3Storage(f, true)

	u, err := st.PresignGet(context.Background(), "documents/u1/abc.pdf", 5*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, u, "documents/u1/abc.pdf")
	assert.Equal(t, "documents/u1/abc.pdf", aws.ToString(f.getIn.Key))
}

func TestNewS3_RealPresigner(t *testing.T) {
	st, err := NewS3(context.Background(), config.S3Config{
		Region:       "sa-east-1",
		Bucket:       "bucket",
		Endpoint:     "http://127.0.0.1:9000",
		AccessKey:    "AKIDEXAMPLE",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	u, err := st.PresignGet(context.Background(), "documents/u1/abc.pdf", 2*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, u, "http://127.0.0.1:9000/bucket/documents/u1/abc.pdf")
	assert.Contains(t, u, "X-Amz-Signature=")
}

func TestNewS3_Validation(t *testing.T) {
	_, err := NewS3(context.Background(), config.S3Config{Region: "sa-east-1"})
	assert.ErrorContains(t, err, "bucket")

	_, err = NewS3(context.Background(), config.S3Config{Bucket: "b"})
	assert.ErrorContains(t, err, "region")
}
