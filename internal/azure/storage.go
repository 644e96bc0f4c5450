package azure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/smoothjs/smooth-cli/internal/logger"
)

// Scheme prefixes blueprint locations stored in Azure Blob Storage:
// azblob://<account>/<container>[/<prefix>]
const Scheme = "azblob://"

// IsURL reports whether raw uses the azblob scheme.
func IsURL(raw string) bool {
	return strings.HasPrefix(raw, Scheme)
}

// Location identifies a set of blobs.
type Location struct {
	Account   string
	Container string
	Prefix    string
}

// ParseURL parses an azblob:// location. The prefix, when present, always
// ends with a slash.
func ParseURL(raw string) (Location, error) {
	if !IsURL(raw) {
		return Location{}, fmt.Errorf("invalid blob location %q: missing %s scheme", raw, Scheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(raw, Scheme), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Location{}, fmt.Errorf("invalid blob location %q: expected %s<account>/<container>[/<prefix>]", raw, Scheme)
	}

	loc := Location{Account: parts[0], Container: parts[1]}
	if len(parts) == 3 {
		loc.Prefix = strings.Trim(parts[2], "/")
		if loc.Prefix != "" {
			loc.Prefix += "/"
		}
	}
	return loc, nil
}

// Fetcher downloads every blob under a location into a directory.
type Fetcher struct {
	Location Location
	// ServiceURL overrides https://<account>.blob.core.windows.net/.
	ServiceURL string
}

// NewFetcher returns a Fetcher for the azblob:// location raw.
func NewFetcher(raw string) (*Fetcher, error) {
	loc, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}
	return &Fetcher{Location: loc}, nil
}

func (f *Fetcher) client() (*azblob.Client, error) {
	// Get the storage account key from environment variable
	key := os.Getenv("AZURE_STORAGE_KEY")
	if key == "" {
		return nil, fmt.Errorf("AZURE_STORAGE_KEY environment variable is not set")
	}

	cred, err := azblob.NewSharedKeyCredential(f.Location.Account, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	serviceURL := f.ServiceURL
	if serviceURL == "" {
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", f.Location.Account)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

// Fetch implements blueprint.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, dest string) error {
	client, err := f.client()
	if err != nil {
		return err
	}

	prefix := f.Location.Prefix
	pager := client.NewListBlobsFlatPager(f.Location.Container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})

	count := 0
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list blobs in %s: %w", f.Location.Container, err)
		}

		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			target, ok, err := TargetPath(dest, prefix, *item.Name)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := f.download(ctx, client, *item.Name, target); err != nil {
				return err
			}
			count++
		}
	}

	if count == 0 {
		return fmt.Errorf("no blobs found in %s/%s", f.Location.Container, prefix)
	}
	logger.Debug("downloaded blueprint", "container", f.Location.Container, "prefix", prefix, "files", count)
	return nil
}

func (f *Fetcher) download(ctx context.Context, client *azblob.Client, name, target string) error {
	resp, err := client.DownloadStream(ctx, f.Location.Container, name, nil)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// TargetPath maps a blob name to a path under dest, stripping prefix.
// Directory placeholders are skipped (ok is false); names escaping dest are
// rejected.
func TargetPath(dest, prefix, name string) (string, bool, error) {
	rel := strings.TrimPrefix(name, prefix)
	if rel == "" || strings.HasSuffix(rel, "/") {
		return "", false, nil
	}

	target := filepath.Join(dest, filepath.FromSlash(rel))
	within, err := filepath.Rel(dest, target)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", false, fmt.Errorf("blob %q escapes the target directory", name)
	}
	return target, true, nil
}
