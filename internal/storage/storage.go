// Package storage persists asset-shell responses in named stores, either on
// local disk or in DigitalOcean Spaces.
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Response is a stored HTTP response.
type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// Storage is a set of named stores, each a key -> Response map. Stores are
// created on first Put and only ever removed whole.
type Storage interface {
	Get(ctx context.Context, store, key string) (*Response, bool, error)
	Put(ctx context.Context, store, key string, r *Response) error
	Stores(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, store string) error
}

var storeName = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func checkStore(store string) error {
	if !storeName.MatchString(store) {
		return fmt.Errorf("invalid store name %q", store)
	}
	return nil
}

// objectName maps a request key to a filesystem and bucket safe name.
func objectName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:]) + ".json"
}

type LocalStorage struct {
	baseDir string
}

type SpacesStorage struct {
	client *s3.S3
	bucket string
	prefix string
}

var _ Storage = (*LocalStorage)(nil)
var _ Storage = (*SpacesStorage)(nil)

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func NewSpacesStorage(endpoint, region, bucket, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		prefix: "shell/",
	}, nil
}

func (ls *LocalStorage) Get(_ context.Context, store, key string) (*Response, bool, error) {
	if err := checkStore(store); err != nil {
		return nil, false, err
	}
	raw, err := os.ReadFile(filepath.Join(ls.baseDir, store, objectName(key)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var r Response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, fmt.Errorf("decode %s/%s: %w", store, key, err)
	}
	return &r, true, nil
}

// Put writes to a temp file and renames it so readers never see a partial
// response.
func (ls *LocalStorage) Put(_ context.Context, store, key string, r *Response) error {
	if err := checkStore(store); err != nil {
		return err
	}
	dir := filepath.Join(ls.baseDir, store)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	dst := filepath.Join(dir, objectName(key))
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	return os.Rename(tmp, dst)
}

func (ls *LocalStorage) Stores(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(ls.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func (ls *LocalStorage) Delete(_ context.Context, store string) error {
	if err := checkStore(store); err != nil {
		return err
	}
	log.Debug().Str("store", store).Str("dir", ls.baseDir).Msg("removing local store")
	return os.RemoveAll(filepath.Join(ls.baseDir, store))
}

func (ss *SpacesStorage) objectKey(store, key string) string {
	return path.Join(ss.prefix, store, objectName(key))
}

func (ss *SpacesStorage) Get(ctx context.Context, store, key string) (*Response, bool, error) {
	if err := checkStore(store); err != nil {
		return nil, false, err
	}
	out, err := ss.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(ss.objectKey(store, key)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, err
	}
	var r Response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, fmt.Errorf("decode %s/%s: %w", store, key, err)
	}
	return &r, true, nil
}

func (ss *SpacesStorage) Put(ctx context.Context, store, key string, r *Response) error {
	if err := checkStore(store); err != nil {
		return err
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(ss.objectKey(store, key)),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
		ACL:         aws.String("private"),
	})
	if err != nil {
		log.Error().Err(err).Str("store", store).Str("key", key).Msg("Failed to upload response to Spaces")
		return fmt.Errorf("failed to upload to Spaces: %w", err)
	}
	return nil
}

func (ss *SpacesStorage) Stores(ctx context.Context) ([]string, error) {
	var out []string
	err := ss.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(ss.bucket),
		Prefix:    aws.String(ss.prefix),
		Delimiter: aws.String("/"),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.StringValue(cp.Prefix), ss.prefix), "/")
			if name != "" {
				out = append(out, name)
			}
		}
		return true
	})
	return out, err
}

func (ss *SpacesStorage) Delete(ctx context.Context, store string) error {
	if err := checkStore(store); err != nil {
		return err
	}
	var deleteErr error
	err := ss.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(ss.bucket),
		Prefix: aws.String(path.Join(ss.prefix, store) + "/"),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		if len(page.Contents) == 0 {
			return true
		}
		ids := make([]*s3.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			ids = append(ids, &s3.ObjectIdentifier{Key: obj.Key})
		}
		_, deleteErr = ss.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(ss.bucket),
			Delete: &s3.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		return deleteErr == nil
	})
	if err != nil {
		return err
	}
	return deleteErr
}
