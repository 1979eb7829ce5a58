package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyframe/pyframe/internal/config"
)

const davPrefix = "/remote.php/dav/files/alice"

type davChild struct {
	name  string
	isDir bool
}

// fakeDAV serves PROPFIND listings and GET downloads for a small
// in-memory tree.
type fakeDAV struct {
	dirs  map[string][]davChild
	files map[string][]byte
	fail  map[string]bool
}

func (f *fakeDAV) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "PROPFIND":
		dir := strings.TrimRight(r.URL.Path, "/")
		children, ok := f.dirs[dir]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusMultiStatus)
		writeResponse := func(href string, isDir bool) {
			rtype := ""
			if isDir {
				rtype = "<d:collection/>"
			}
			fmt.Fprintf(w, "<d:response><d:href>%s</d:href><d:propstat><d:prop><d:resourcetype>%s</d:resourcetype></d:prop><d:status>HTTP/1.1 200 OK</d:status></d:propstat></d:response>", href, rtype)
		}
		fmt.Fprint(w, `<?xml version="1.0"?><d:multistatus xmlns:d="DAV:">`)
		writeResponse(dir+"/", true)
		for _, c := range children {
			writeResponse(dir+"/"+c.name, c.isDir)
		}
		fmt.Fprint(w, `</d:multistatus>`)
	case http.MethodGet:
		if f.fail[r.URL.Path] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		data, ok := f.files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeDAV() *fakeDAV {
	return &fakeDAV{
		dirs: map[string][]davChild{
			davPrefix + "/Photos": {
				{name: "a.jpg"},
				{name: "b.jpg"},
				{name: "skip_me.jpg"},
				{name: "holiday_thumb.jpg"},
				{name: "nested", isDir: true},
				{name: "Trash", isDir: true},
			},
			davPrefix + "/Photos/nested": {
				{name: "c.png"},
			},
			davPrefix + "/Photos/Trash": {
				{name: "d.jpg"},
			},
		},
		files: map[string][]byte{
			davPrefix + "/Photos/a.jpg":        []byte("image a"),
			davPrefix + "/Photos/b.jpg":        []byte("remote b"),
			davPrefix + "/Photos/nested/c.png": []byte("image c"),
			davPrefix + "/Photos/Trash/d.jpg":  []byte("image d"),
		},
		fail: map[string]bool{},
	}
}

func testSettings(serverURL, dest string) config.RemoteSettings {
	return config.RemoteSettings{
		URL:            serverURL,
		Username:       "alice",
		Password:       "secret",
		Dirs:           []string{"Photos"},
		Workers:        4,
		Destination:    dest,
		IgnoreFiles:    []string{"SKIP_ME.jpg"},
		IgnoreContains: []string{"thumb"},
		IgnoreFolders:  []string{"trash"},
	}
}

func TestFiltersSkip(t *testing.T) {
	f := NewFilters(
		[]string{"Skip_Me.jpg"},
		[]string{"thumb"},
		[]string{"Trash"},
	)

	assert.True(t, f.Skip("skip_me.jpg", false))
	assert.True(t, f.Skip("SKIP_ME.JPG", false))
	assert.True(t, f.Skip("holiday_thumb.jpg", false))
	assert.True(t, f.Skip("trash", true))
	assert.False(t, f.Skip("a.jpg", false))
	assert.False(t, f.Skip("nested", true))
	// Folder filters never apply to files and vice versa.
	assert.False(t, f.Skip("trash", false))
	assert.False(t, f.Skip("skip_me.jpg", true))
}

func TestListParsesMultistatus(t *testing.T) {
	server := httptest.NewServer(newFakeDAV())
	defer server.Close()

	client := NewClient(testSettings(server.URL, t.TempDir()))
	defer client.Close()

	entries, err := client.List(context.Background(), davPrefix+"/Photos")
	require.NoError(t, err)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name] = e.IsDir
	}
	// The directory's own entry is dropped from the listing.
	assert.Len(t, entries, 6)
	assert.False(t, names["a.jpg"])
	assert.True(t, names["nested"])
	assert.True(t, names["Trash"])
}

func TestSyncDownloadsMissingOnly(t *testing.T) {
	server := httptest.NewServer(newFakeDAV())
	defer server.Close()

	dest := t.TempDir()
	// b.jpg is already present locally and must not be overwritten.
	require.NoError(t, os.WriteFile(filepath.Join(dest, "b.jpg"), []byte("local b"), 0644))

	syncer := NewSyncer(testSettings(server.URL, dest))
	require.NoError(t, syncer.Run(context.Background()))

	got, err := os.ReadFile(filepath.Join(dest, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "image a", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "local b", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "nested", "c.png"))
	require.NoError(t, err)
	assert.Equal(t, "image c", string(got))

	// Ignored items never arrive.
	assert.NoFileExists(t, filepath.Join(dest, "skip_me.jpg"))
	assert.NoFileExists(t, filepath.Join(dest, "holiday_thumb.jpg"))
	assert.NoDirExists(t, filepath.Join(dest, "Trash"))
}

func TestSyncFailedDownloadLeavesNoFile(t *testing.T) {
	dav := newFakeDAV()
	dav.fail[davPrefix+"/Photos/a.jpg"] = true
	server := httptest.NewServer(dav)
	defer server.Close()

	dest := t.TempDir()
	syncer := NewSyncer(testSettings(server.URL, dest))
	err := syncer.Run(context.Background())
	assert.Error(t, err)

	assert.NoFileExists(t, filepath.Join(dest, "a.jpg"))
	// The rest of the pass still completes.
	assert.FileExists(t, filepath.Join(dest, "b.jpg"))
}

func TestSyncUnreachableListing(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	syncer := NewSyncer(testSettings(server.URL, t.TempDir()))
	assert.Error(t, syncer.Run(context.Background()))
}
