package storage_test

import (
	"testing"
	"time"

	"github.com/pupperworks/pupper/pkg/storage"
)

func TestConfigDefaults(t *testing.T) {
	var cfg storage.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Bucket != "pupper-images" {
		t.Errorf("Bucket = %q, want pupper-images", cfg.Bucket)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", cfg.Region)
	}
	if cfg.PresignExpiryDuration() != time.Hour {
		t.Errorf("PresignExpiry = %v, want 1h", cfg.PresignExpiryDuration())
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("TEST_STORAGE_BUCKET", "other-bucket")
	t.Setenv("TEST_STORAGE_PRESIGN_EXPIRY", "15m")

	var cfg storage.Config
	err := cfg.Finalize(&storage.Env{
		Bucket:        "TEST_STORAGE_BUCKET",
		PresignExpiry: "TEST_STORAGE_PRESIGN_EXPIRY",
	})
	if err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Bucket != "other-bucket" {
		t.Errorf("Bucket = %q, want other-bucket", cfg.Bucket)
	}
	if cfg.PresignExpiryDuration() != 15*time.Minute {
		t.Errorf("PresignExpiry = %v, want 15m", cfg.PresignExpiryDuration())
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := storage.Config{PresignExpiry: "whenever"}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() = nil, want error for bad presign_expiry")
	}
}

func TestConfigMerge(t *testing.T) {
	base := storage.Config{Bucket: "base-bucket", Region: "us-east-1"}
	base.Merge(&storage.Config{Endpoint: "http://localhost:9000", UsePathStyle: true})

	if base.Bucket != "base-bucket" || base.Region != "us-east-1" {
		t.Errorf("merged = %+v, zero overlay fields must not clear base", base)
	}
	if base.Endpoint != "http://localhost:9000" {
		t.Errorf("Endpoint = %q", base.Endpoint)
	}
	if !base.UsePathStyle {
		t.Error("UsePathStyle = false, overlay value must apply")
	}
}
