package media

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"
)

// Defaults used by the mobile app.
const (
	DefaultCloudName    = "dyxwkzchf"
	DefaultUploadPreset = "mediaescenarios"
	DefaultFolder       = "escenarios"
)

// CloudinaryConfig configures a CloudinaryUploader.
type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	Folder       string
	APIKey       string // optional; required for Destroy
	APISecret    string // optional; required for Destroy
	UploadPrefix string // optional; overrides https://api.cloudinary.com
	Timeout      time.Duration
}

// CloudinaryUploader uploads with an unsigned preset.
type CloudinaryUploader struct {
	cld     *cloudinary.Cloudinary
	cfg     CloudinaryConfig
	timeout time.Duration
}

// NewCloudinaryUploader creates an uploader for cfg.
func NewCloudinaryUploader(cfg CloudinaryConfig) (*CloudinaryUploader, error) {
	if cfg.CloudName == "" {
		return nil, fmt.Errorf("cloud name cannot be empty")
	}
	if cfg.UploadPreset == "" {
		return nil, fmt.Errorf("upload preset cannot be empty")
	}

	conf, err := cldconfig.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	// The SDK copies the configuration into each API client, so the prefix
	// must be set before construction.
	if cfg.UploadPrefix != "" {
		conf.API.UploadPrefix = cfg.UploadPrefix
	}
	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &CloudinaryUploader{cld: cld, cfg: cfg, timeout: timeout}, nil
}

// InFolder returns an uploader that stores new assets under folder.
func (u *CloudinaryUploader) InFolder(folder string) *CloudinaryUploader {
	cp := *u
	cp.cfg.Folder = folder
	return &cp
}

// Upload sends the local file at ref using the configured preset.
func (u *CloudinaryUploader) Upload(ctx context.Context, ref string) (*Asset, error) {
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", ref, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	resp, err := u.cld.Upload.UnsignedUpload(ctx, f, u.cfg.UploadPreset, uploader.UploadParams{
		Folder: u.cfg.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("upload error: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return nil, fmt.Errorf("upload error: response did not include a secure URL")
	}

	return &Asset{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Destroy deletes an uploaded asset. Requires API key and secret.
func (u *CloudinaryUploader) Destroy(ctx context.Context, assetURL string) error {
	if u.cfg.APIKey == "" || u.cfg.APISecret == "" {
		return ErrDestroyUnsupported
	}

	publicID, err := PublicIDFromURL(assetURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("delete error: %s", resp.Error.Message)
	}
	if resp.Result != "" && resp.Result != "ok" {
		return fmt.Errorf("delete error: %s", resp.Result)
	}
	return nil
}
