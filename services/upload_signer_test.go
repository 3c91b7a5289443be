package services

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSigner() *UploadSigner {
	return NewUploadSigner(map[string]string{
		"CLOUDINARY_CLOUD_NAME": "demo",
		"CLOUDINARY_API_KEY":    "key123",
		"CLOUDINARY_API_SECRET": "shh",
	})
}

func TestUploadSigner_Configured(t *testing.T) {
	require.True(t, testSigner().Configured())
	require.False(t, NewUploadSigner(map[string]string{}).Configured())
}

func TestUploadSigner_Sign(t *testing.T) {
	now := time.Unix(1700000000, 0)

	signed := testSigner().Sign("reports", "", now)

	require.Equal(t, int64(1700000000), signed.Timestamp)
	require.Equal(t, "reports", signed.Folder)
	require.Equal(t, "demo", signed.CloudName)
	require.Equal(t, "key123", signed.APIKey)
	require.Empty(t, signed.UploadPreset)

	want := sha1.Sum([]byte("folder=reports&timestamp=1700000000shh"))
	require.Equal(t, hex.EncodeToString(want[:]), signed.Signature)
}

func TestUploadSigner_SignIncludesPreset(t *testing.T) {
	now := time.Unix(1700000000, 0)

	signed := testSigner().Sign("reports", "web-admin", now)

	require.Equal(t, "web-admin", signed.UploadPreset)
	want := sha1.Sum([]byte(fmt.Sprintf(
		"folder=reports&timestamp=%d&upload_preset=web-admin%s", signed.Timestamp, "shh")))
	require.Equal(t, hex.EncodeToString(want[:]), signed.Signature)
}

func TestUploadSigner_DefaultFolder(t *testing.T) {
	signed := testSigner().Sign("", "", time.Unix(1700000000, 0))
	require.Equal(t, "raagsan", signed.Folder)
}
