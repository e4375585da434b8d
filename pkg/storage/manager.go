package storage

import (
	"fmt"

	"github.com/shashiranjanraj/infocart/config"
)

// FromConfig builds the upload disk selected by STORAGE_DISK.
func FromConfig(cfg *config.Config) (Disk, error) {
	switch cfg.StorageDisk {
	case "local":
		return NewLocalDisk(cfg.UploadRoot, cfg.UploadURL), nil
	case "s3":
		return NewS3Disk(S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3URL,
		})
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DISK %q (supported: local, s3)", cfg.StorageDisk)
	}
}
