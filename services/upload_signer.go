package services

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/omar-mohamud/raagsanplatform/config"
)

// UploadSigner produces signatures the media host accepts for pre-signed
// browser uploads. The host itself is an external collaborator: our only
// responsibility is signing the upload parameters with the server-held
// secret.
type UploadSigner struct {
	cloudName string
	apiKey    string
	apiSecret string
}

func NewUploadSigner(cfg map[string]string) *UploadSigner {
	return &UploadSigner{
		cloudName: config.GetString(cfg, "CLOUDINARY_CLOUD_NAME", ""),
		apiKey:    config.GetString(cfg, "CLOUDINARY_API_KEY", ""),
		apiSecret: config.GetString(cfg, "CLOUDINARY_API_SECRET", ""),
	}
}

// Configured reports whether the media-host credentials are present.
func (s *UploadSigner) Configured() bool {
	return s.apiSecret != ""
}

// SignedUpload is what the browser needs to upload directly to the media
// host.
type SignedUpload struct {
	Timestamp    int64  `json:"timestamp"`
	Folder       string `json:"folder"`
	UploadPreset string `json:"upload_preset,omitempty"`
	Signature    string `json:"signature"`
	CloudName    string `json:"cloud_name"`
	APIKey       string `json:"api_key"`
}

// Sign builds the signature over the upload parameters: parameters sorted by
// key, joined as key=value pairs with '&', with the secret appended, hashed
// with SHA-1. This is the media host's documented scheme, not ours to vary.
func (s *UploadSigner) Sign(folder, uploadPreset string, now time.Time) SignedUpload {
	if folder == "" {
		folder = "raagsan"
	}
	timestamp := now.Unix()

	params := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
		"folder":    folder,
	}
	if uploadPreset != "" {
		params["upload_preset"] = uploadPreset
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))

	return SignedUpload{
		Timestamp:    timestamp,
		Folder:       folder,
		UploadPreset: uploadPreset,
		Signature:    hex.EncodeToString(sum[:]),
		CloudName:    s.cloudName,
		APIKey:       s.apiKey,
	}
}
