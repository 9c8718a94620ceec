package client

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/soda/internal/constants"
	"github.com/fivetwenty-io/soda/pkg/soda"
)

type attachment struct {
	Filename string `json:"filename"`
	AssetID  string `json:"assetId"`
	BlobID   string `json:"blobId"`
}

type attachmentsMetadata struct {
	Metadata struct {
		Attachments []attachment `json:"attachments"`
	} `json:"metadata"`
}

// DownloadAttachments implements soda.Client.DownloadAttachments. An empty dir
// downloads into ~/sodapy_downloads.
func (c *Client) DownloadAttachments(ctx context.Context, datasetID, dir string, opts ...soda.RequestOption) ([]string, error) {
	result, err := c.GetMetadata(ctx, datasetID, opts...)
	if err != nil {
		return nil, err
	}

	var metadata attachmentsMetadata
	if err := result.Unmarshal(&metadata); err != nil {
		return nil, fmt.Errorf("parsing metadata of dataset %s: %w", datasetID, err)
	}

	files := []string{}

	if len(metadata.Metadata.Attachments) == 0 {
		c.logger.Info("No attachments were found or downloaded.", map[string]interface{}{
			"dataset": datasetID,
		})

		return files, nil
	}

	for _, att := range metadata.Metadata.Attachments {
		if !isPlainFilename(att.Filename) {
			return nil, fmt.Errorf("%w: %q", soda.ErrUnsafeFilename, att.Filename)
		}
	}

	if dir == "" {
		dir = constants.DefaultDownloadDir
	}

	dir, err = expandHome(dir)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(dir, datasetID)
	if err := os.MkdirAll(target, constants.ConfigDirPerm); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	for _, att := range metadata.Metadata.Attachments {
		path, query := attachmentResource(datasetID, att)
		filePath := filepath.Join(target, att.Filename)

		if err := c.downloadFile(ctx, path, query, filePath); err != nil {
			return files, err
		}

		files = append(files, filePath)
	}

	c.logger.Info("The following files were downloaded", map[string]interface{}{
		"dataset": datasetID,
		"files":   strings.Join(files, ", "),
	})

	return files, nil
}

// attachmentResource returns the download path of an attachment. Attachments
// carrying an asset id are served by the views API, the others by the assets API.
func attachmentResource(datasetID string, att attachment) (string, url.Values) {
	if att.AssetID != "" {
		return fmt.Sprintf("%s/%s/files/%s", constants.LegacyAPIPath, datasetID, att.AssetID),
			url.Values{"download": {"true"}, "filename": {att.Filename}}
	}

	return fmt.Sprintf("%s/%s", constants.AssetsPath, att.BlobID), url.Values{"download": {"true"}}
}

func (c *Client) downloadFile(ctx context.Context, path string, query url.Values, filePath string) error {
	file, err := os.Create(filePath) //nolint:gosec // path is built from the download directory
	if err != nil {
		return fmt.Errorf("creating %s: %w", filePath, err)
	}

	_, err = c.httpClient.Download(ctx, path, query, file)
	closeErr := file.Close()

	if err != nil {
		_ = os.Remove(filePath)

		return fmt.Errorf("downloading %s: %w", filePath, err)
	}

	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", filePath, closeErr)
	}

	return nil
}

// isPlainFilename reports whether name is a single path element naming a file.
func isPlainFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}

// expandHome replaces a leading "~" with the user home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
