package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	testCases := []struct {
		raw     string
		want    Location
		wantErr bool
	}{
		{raw: "azblob://acct/blueprints", want: Location{Account: "acct", Container: "blueprints"}},
		{raw: "azblob://acct/blueprints/smooth-app", want: Location{Account: "acct", Container: "blueprints", Prefix: "smooth-app/"}},
		{raw: "azblob://acct/blueprints/a/b/", want: Location{Account: "acct", Container: "blueprints", Prefix: "a/b/"}},
		{raw: "azblob://acct", wantErr: true},
		{raw: "azblob:///blueprints", wantErr: true},
		{raw: "https://acct.blob.core.windows.net/blueprints", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseURL(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTargetPath(t *testing.T) {
	dest := filepath.Join("tmp", "my-app")

	target, ok, err := TargetPath(dest, "smooth-app/", "smooth-app/src/index.ts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dest, "src", "index.ts"), target)

	_, ok, err = TargetPath(dest, "smooth-app/", "smooth-app/src/")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = TargetPath(dest, "", "../../etc/passwd")
	assert.Error(t, err)
}

func TestFetchRequiresKey(t *testing.T) {
	t.Setenv("AZURE_STORAGE_KEY", "")
	f, err := NewFetcher("azblob://acct/blueprints")
	require.NoError(t, err)

	err = f.Fetch(context.Background(), t.TempDir())

	assert.EqualError(t, err, "AZURE_STORAGE_KEY environment variable is not set")
}

// blobServer answers List Blobs and Get Blob requests for one container.
func blobServer(t *testing.T, container string, blobs map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/"+container)
		if r.URL.Query().Get("comp") == "list" && path == "" {
			prefix := r.URL.Query().Get("prefix")
			var names []string
			for name := range blobs {
				if strings.HasPrefix(name, prefix) {
					names = append(names, name)
				}
			}
			sort.Strings(names)

			var b strings.Builder
			fmt.Fprintf(&b, `<?xml version="1.0" encoding="utf-8"?><EnumerationResults ContainerName=%q><Prefix>%s</Prefix><Blobs>`, container, prefix)
			for _, name := range names {
				fmt.Fprintf(&b, `<Blob><Name>%s</Name><Properties><Content-Length>%d</Content-Length></Properties></Blob>`, name, len(blobs[name]))
			}
			b.WriteString(`</Blobs><NextMarker /></EnumerationResults>`)

			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(b.String()))
			return
		}

		content, ok := blobs[strings.TrimPrefix(path, "/")]
		if r.Method != http.MethodGet || !ok {
			w.Header().Set("x-ms-error-code", "BlobNotFound")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", fmt.Sprint(len(content)))
		_, _ = w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	t.Setenv("AZURE_STORAGE_KEY", "ZHVtbXktc3RvcmFnZS1rZXk=")
	srv := blobServer(t, "blueprints", map[string]string{
		"smooth/package.json":        `{"name":"smooth-app"}`,
		"smooth/src/":                "",
		"smooth/src/index.ts":        "export {}",
		"smooth/app/controllers/.gk": "",
		"other/README.md":            "not part of the blueprint",
	})

	f, err := NewFetcher("azblob://acct/blueprints/smooth")
	require.NoError(t, err)
	f.ServiceURL = srv.URL + "/"

	dest := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, f.Fetch(context.Background(), dest))

	content, err := os.ReadFile(filepath.Join(dest, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"smooth-app"}`, string(content))

	content, err = os.ReadFile(filepath.Join(dest, "src", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export {}", string(content))

	assert.FileExists(t, filepath.Join(dest, "app", "controllers", ".gk"))
	assert.NoFileExists(t, filepath.Join(dest, "README.md"))
	assert.NoDirExists(t, filepath.Join(dest, "smooth"))
}

func TestFetchEmptyPrefix(t *testing.T) {
	t.Setenv("AZURE_STORAGE_KEY", "ZHVtbXktc3RvcmFnZS1rZXk=")
	srv := blobServer(t, "blueprints", map[string]string{
		"other/README.md": "not part of the blueprint",
	})

	f, err := NewFetcher("azblob://acct/blueprints/smooth")
	require.NoError(t, err)
	f.ServiceURL = srv.URL + "/"

	err = f.Fetch(context.Background(), filepath.Join(t.TempDir(), "my-app"))

	assert.ErrorContains(t, err, "no blobs found in blueprints/smooth/")
}
