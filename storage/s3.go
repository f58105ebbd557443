package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// EnvS3Endpoint points uploads at an S3-compatible service such as MinIO.
const EnvS3Endpoint = "S3_ENDPOINT_URL"

type s3Storage struct {
	client *s3.Client
	config S3Config
}

type S3Config struct {
	Bucket string
}

func NewS3Storage(ctx context.Context, s S3Config) (Storage, error) {
	c, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint, hasEndpoint := os.LookupEnv(EnvS3Endpoint)
	s3Client := s3.NewFromConfig(c, func(o *s3.Options) {
		if hasEndpoint && endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &s3Storage{
		client: s3Client,
		config: s,
	}, nil
}

func (s *s3Storage) Put(ctx context.Context, key string, data []byte) (string, error) {
	contentType := http.DetectContentType(data)

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.config.Bucket, key), nil
}

func (s *s3Storage) Get(ctx context.Context, key string) ([]byte, error) {
	key = strings.TrimPrefix(key, fmt.Sprintf("s3://%s/", s.config.Bucket))

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	defer result.Body.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read S3 object: %w", err)
	}

	return buffer.Bytes(), nil
}

func (s *s3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.config.Bucket),
		Delimiter: aws.String("/"),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix + "/")
	}

	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.config.Bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !utils.IsImageFile(key) {
				continue
			}
			objects = append(objects, Object{
				Key:      key,
				Location: fmt.Sprintf("s3://%s/%s", s.config.Bucket, key),
				Size:     aws.ToInt64(obj.Size),
				Modified: aws.ToTime(obj.LastModified),
			})
		}
	}

	sortNewestFirst(objects)
	return objects, nil
}
