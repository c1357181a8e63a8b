package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client abstracts file storage for resumes, CVs, and company logos. File
// contents are opaque; callers stream them through without interpretation.
type Client interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
	Delete(ctx context.Context, publicID string) error
	Exists(ctx context.Context, url string) (bool, error)
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

type cloudinaryClient struct {
	cloudName string
	uploader  *uploader.API
	httpc     *http.Client
}

// NewCloudinary builds a Client from Cloudinary cloud name, API key, and secret.
func NewCloudinary(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &cloudinaryClient{
		cloudName: cloudName,
		uploader:  up,
		httpc:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *cloudinaryClient) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

func (c *cloudinaryClient) Delete(ctx context.Context, publicID string) error {
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// Open streams a stored asset from its delivery URL.
func (c *cloudinaryClient) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d opening %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// Exists probes the delivery URL. Cloudinary serves stored assets over plain
// GET/HEAD, so a 200 means the file is still there.
func (c *cloudinaryClient) Exists(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status %d probing %s", resp.StatusCode, url)
	}
}
