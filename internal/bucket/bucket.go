package bucket

import (
	"fmt"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	S3AccessKey       string        `mapstructure:"s3_access_key"`
	S3SecretAccessKey string        `mapstructure:"s3_secret_access_key"`
	S3Endpoint        string        `mapstructure:"s3_endpoint"`
	S3BucketName      string        `mapstructure:"s3_bucket_name"`
	S3BucketLocation  string        `mapstructure:"s3_bucket_location"`
	Insecure          bool          `mapstructure:"insecure"`
	BaseFolder        string        `mapstructure:"base_folder"`
	Folder            string        `mapstructure:"folder"`
	CDNEndpoint       string        `mapstructure:"cdn_endpoint"`
	ConvertWebP       bool          `mapstructure:"convert_webp"`
	WebPQuality       float32       `mapstructure:"webp_quality"`
	PresignExpiry     time.Duration `mapstructure:"presign_expiry"`
}

type Bucket struct {
	*minio.Client
	*Config
	http *http.Client
}

// Init connects the S3 client. No request is made until an upload starts.
func (c *Config) Init() (*Bucket, error) {
	cli, err := minio.New(c.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.S3AccessKey, c.S3SecretAccessKey, ""),
		Secure: !c.Insecure,
		Region: c.S3BucketLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("can't create s3 client: %w", err)
	}
	if c.Folder == "" {
		c.Folder = "uploads"
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 80
	}
	if c.PresignExpiry <= 0 {
		c.PresignExpiry = 15 * time.Minute
	}
	return &Bucket{
		Client: cli,
		Config: c,
		http:   &http.Client{Timeout: 2 * time.Minute},
	}, nil
}
