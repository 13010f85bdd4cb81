package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"

	"github.com/katryana/airport-api/config"
)

// OSSStore uploads images to an Aliyun OSS bucket and keeps a local copy as
// fallback storage.
type OSSStore struct {
	cfg    config.OSSConfig
	local  *LocalStore
	client *oss.Client
}

func NewOSSStore(cfg config.OSSConfig, local *LocalStore) *OSSStore {
	clientCfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessID, cfg.AccessKey)).
		WithRegion(cfg.Region)
	return &OSSStore{cfg: cfg, local: local, client: oss.NewClient(clientCfg)}
}

func (s *OSSStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	if _, err := s.local.Save(ctx, filename, bytes.NewReader(data)); err != nil {
		return "", err
	}

	key := path.Join(s.cfg.Prefix, objectName(filename))
	putRequest := &oss.PutObjectRequest{
		Bucket:       oss.Ptr(s.cfg.Bucket),
		Key:          oss.Ptr(key),
		StorageClass: oss.StorageClassStandard,
		Body:         bytes.NewReader(data),
	}
	if _, err := s.client.PutObject(ctx, putRequest); err != nil {
		return "", fmt.Errorf("upload image to oss: %w", err)
	}

	accessURL, err := url.JoinPath(fmt.Sprintf("https://%s.oss-%s.aliyuncs.com", s.cfg.Bucket, s.cfg.Region), key)
	if err != nil {
		return "", fmt.Errorf("join image url: %w", err)
	}
	return accessURL, nil
}

var _ ImageStore = (*OSSStore)(nil)
