package utils

import (
	"bytes"
	"certapp/config"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// UploadToCloudinary sends the whole image buffer to Cloudinary's upload
// endpoint in a single signed request and returns the hosted secure URL.
// No retry and no size or content-type checks; the media host owns those.
func UploadToCloudinary(data []byte, filename, folder string) (string, error) {
	cfg := config.AppConfig

	uploadURL := cfg.CloudinaryUploadURL
	if uploadURL == "" {
		uploadURL = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudinaryCloudName)
	}

	publicID := uuid.NewString()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	// Cloudinary signs the parameters sorted by name, concatenated with the
	// API secret
	toSign := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s%s", folder, publicID, timestamp, cfg.CloudinaryAPISecret)
	digest := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(digest[:])

	client := resty.New()
	resp, err := client.R().
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"api_key":   cfg.CloudinaryAPIKey,
			"timestamp": timestamp,
			"signature": signature,
			"folder":    folder,
			"public_id": publicID,
		}).
		Post(uploadURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("cloudinary upload failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	var uploadResp struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return "", fmt.Errorf("invalid cloudinary response: %w", err)
	}
	if uploadResp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary response missing secure_url")
	}

	return uploadResp.SecureURL, nil
}
