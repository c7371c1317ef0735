// Destination and source I/O for local paths, S3, and HTTP URLs.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// urlScheme represents the scheme of a destination or source string.
type urlScheme string

const (
	schemeFile  urlScheme = "file"
	schemeS3    urlScheme = "s3"
	schemeHTTP  urlScheme = "http"
	schemeHTTPS urlScheme = "https"
	schemeLocal urlScheme = "local" // no scheme, plain path
)

// detectScheme detects the URL scheme from a path string.
func detectScheme(path string) urlScheme {
	lowerPath := strings.ToLower(path)
	switch {
	case strings.HasPrefix(lowerPath, "s3://"):
		return schemeS3
	case strings.HasPrefix(lowerPath, "https://"):
		return schemeHTTPS
	case strings.HasPrefix(lowerPath, "http://"):
		return schemeHTTP
	case strings.HasPrefix(lowerPath, "file://"):
		return schemeFile
	default:
		return schemeLocal
	}
}

// create opens the write side of an export destination. Local destinations
// are truncated, so repeated saves overwrite whole files.
func (exporter *Exporter) create(dest string) (io.WriteCloser, error) {
	switch detectScheme(dest) {
	case schemeLocal, schemeFile:
		return exporter.fs.Create(strings.TrimPrefix(dest, "file://"))
	case schemeS3:
		return exporter.createS3(dest)
	default:
		return nil, fmt.Errorf("cannot write to %s", dest)
	}
}

// Open opens the read side of a script source: local and file:// paths
// through the filesystem, plus http(s):// and s3:// fetches.
func (exporter *Exporter) Open(source string) (io.ReadCloser, error) {
	switch detectScheme(source) {
	case schemeLocal, schemeFile:
		return exporter.fs.Open(strings.TrimPrefix(source, "file://"))
	case schemeHTTP, schemeHTTPS:
		return openHTTPReader(source)
	case schemeS3:
		return exporter.openS3(source)
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s", source)
	}
}

// openHTTPReader opens an HTTP GET reader.
func openHTTPReader(url string) (io.ReadCloser, error) {
	client := &http.Client{
		Timeout: 5 * time.Minute, // generous timeout for large scripts
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request returned status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// parseS3URL parses s3://bucket/key into bucket and key parts.
func parseS3URL(url string) (bucket, key string, err error) {
	path := strings.TrimPrefix(url, "s3://")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid S3 URL: %s", url)
	}
	return parts[0], parts[1], nil
}

// s3Client creates an S3 client from the exporter's configuration. Unset
// fields fall through to the AWS default chain.
func (exporter *Exporter) s3Client(ctx context.Context) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error

	if exporter.s3.Region != "" {
		opts = append(opts, config.WithRegion(exporter.s3.Region))
	}
	if exporter.s3.AccessKey != "" && exporter.s3.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(exporter.s3.AccessKey, exporter.s3.SecretKey, "")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if exporter.s3.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(exporter.s3.Endpoint)
			o.UsePathStyle = true // For S3-compatible services
		})
	}

	return s3.NewFromConfig(awsCfg, clientOpts...), nil
}

// openS3 opens a reader for an S3 object.
func (exporter *Exporter) openS3(url string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	client, err := exporter.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}

	return resp.Body, nil
}

// createS3 opens a writer for an S3 object.
func (exporter *Exporter) createS3(url string) (io.WriteCloser, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	client, err := exporter.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	return &s3Writer{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		key:    key,
	}, nil
}

// s3Writer buffers written bytes and uploads the object on Close.
type s3Writer struct {
	ctx    context.Context
	client *s3.Client
	bucket string
	key    string
	buffer []byte
	closed bool
}

func (w *s3Writer) Write(p []byte) (n int, err error) {
	if w.closed {
		return 0, fmt.Errorf("writer is closed")
	}
	w.buffer = append(w.buffer, p...)
	return len(p), nil
}

func (w *s3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buffer),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}
