package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

type s3Storage struct {
	uploader *s3manager.Uploader
	cfg      S3Configs
}

func NewS3Storage(cfg S3Configs) Storage {
	sess, _ := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})

	return &s3Storage{uploader: s3manager.NewUploader(sess), cfg: cfg}
}

// prepare assigns the object a collision-free key and returns the input for
// the uploader together with the public response the caller hands out.
func (s *s3Storage) prepare(object *UploadObject) (*s3manager.UploadInput, *UploadResponse) {
	key := fmt.Sprintf("%s/%s-%s", object.Prefix, uuid.NewString(), object.FileName)

	input := &s3manager.UploadInput{
		Bucket:      aws.String(object.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(object.Data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(object.Mime),
	}

	resp := &UploadResponse{
		Url:      fmt.Sprintf("%s/%s/%s", s.cfg.PublicEndpoint, object.Bucket, key),
		FileName: key,
	}

	return input, resp
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	input, resp := s.prepare(object)
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return nil, fmt.Errorf("upload to bucket %s key %s: %w", object.Bucket, resp.FileName, err)
	}

	return resp, nil
}

func (s *s3Storage) BulkUpload(ctx context.Context, objects []*UploadObject) ([]*UploadResponse, error) {
	batch := make([]s3manager.BatchUploadObject, 0, len(objects))
	out := make([]*UploadResponse, 0, len(objects))
	for _, object := range objects {
		input, resp := s.prepare(object)
		batch = append(batch, s3manager.BatchUploadObject{Object: input})
		out = append(out, resp)
	}

	iter := &s3manager.UploadObjectsIterator{Objects: batch}
	if err := s.uploader.UploadWithIterator(ctx, iter); err != nil {
		return nil, err
	}

	return out, nil
}
