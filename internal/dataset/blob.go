package dataset

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/foodhub/foodhub/internal/models"
)

// BlobSource downloads the dataset from Azure Blob Storage. URLs carrying a
// SAS token are used as-is; otherwise the default Azure credential chain is
// used.
type BlobSource struct {
	Options

	// Credential overrides the default credential chain when set.
	Credential azcore.TokenCredential
}

// blobLocation is a parsed https://<account>.blob.core.windows.net/<container>/<blob> URL.
type blobLocation struct {
	ServiceURL string
	Container  string
	Blob       string
	HasSAS     bool
}

func isBlobURL(p string) bool {
	u, err := url.Parse(p)
	if err != nil || u.Scheme != "https" {
		return false
	}
	return strings.Contains(u.Host, ".blob.")
}

func parseBlobURL(raw string) (*blobLocation, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing blob URL: %w", err)
	}
	container, blobName, ok := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if !ok || container == "" || blobName == "" {
		return nil, fmt.Errorf("blob URL %q must name a container and a blob", raw)
	}

	loc := &blobLocation{
		ServiceURL: fmt.Sprintf("%s://%s/", u.Scheme, u.Host),
		Container:  container,
		Blob:       blobName,
	}
	if u.RawQuery != "" && u.Query().Has("sig") {
		loc.HasSAS = true
		loc.ServiceURL += "?" + u.RawQuery
	}
	return loc, nil
}

// Load downloads the blob and decodes it by its file extension.
func (s *BlobSource) Load(ctx context.Context) ([]models.Restaurant, error) {
	loc, err := parseBlobURL(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	client, err := s.client(loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	resp, err := client.DownloadStream(ctx, loc.Container, loc.Blob, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading %s/%s: %w", ErrDataUnavailable, loc.Container, loc.Blob, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s/%s: %w", ErrDataUnavailable, loc.Container, loc.Blob, err)
	}
	return decodeBytes(s.Options, path.Base(loc.Blob), data)
}

func (s *BlobSource) client(loc *blobLocation) (*azblob.Client, error) {
	if loc.HasSAS {
		return azblob.NewClientWithNoCredential(loc.ServiceURL, nil)
	}
	cred := s.Credential
	if cred == nil {
		var err error
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("creating Azure credential: %w", err)
		}
	}
	return azblob.NewClient(loc.ServiceURL, cred, nil)
}
