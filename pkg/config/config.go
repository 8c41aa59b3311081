package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-raytracer/pkg/output"
)

// Config holds runtime settings read from the environment
type Config struct {
	OutputDir     string
	Format        output.Format
	ScenesDir     string
	ServerAddress string

	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3Prefix    string
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Load reads envFile into the environment when it exists, then builds a Config
// from the environment. Variables already set take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	format, err := output.ParseFormat(getEnv("RAYTRACER_FORMAT", string(output.FormatPPM)))
	if err != nil {
		return nil, fmt.Errorf("RAYTRACER_FORMAT: %w", err)
	}

	return &Config{
		OutputDir:     getEnv("RAYTRACER_OUTPUT_DIR", "output"),
		Format:        format,
		ScenesDir:     getEnv("RAYTRACER_SCENES_DIR", "scenes"),
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Prefix:      os.Getenv("S3_PREFIX"),
	}, nil
}

// S3Enabled reports whether uploads are configured
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// NewS3Sink creates an upload sink for the configured bucket
func (c *Config) NewS3Sink() (*output.S3Sink, error) {
	if !c.S3Enabled() {
		return nil, errors.New("S3_BUCKET is not set")
	}

	s3Config := &aws.Config{
		Region:           aws.String(c.S3Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if c.S3AccessKey != "" {
		s3Config.Credentials = credentials.NewStaticCredentials(c.S3AccessKey, c.S3SecretKey, "")
	}
	if c.S3Endpoint != "" {
		s3Config.Endpoint = aws.String(c.S3Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return output.NewS3Sink(s3.New(sess), c.S3Bucket, c.S3Prefix), nil
}
