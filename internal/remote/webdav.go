package remote

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"resty.dev/v3"

	"github.com/pyframe/pyframe/internal/config"
)

// propfindBody asks the server for resource types only, which is all
// the listing needs to tell files from collections.
const propfindBody = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:">
  <d:prop><d:resourcetype/></d:prop>
</d:propfind>`

// Entry is one item of a remote directory listing.
type Entry struct {
	Path  string // server path, URL-decoded
	Name  string
	IsDir bool
}

// Client talks WebDAV to a Nextcloud-style server. Remote paths are
// rooted under the per-user files prefix.
type Client struct {
	http   *resty.Client
	prefix string
}

func NewClient(settings config.RemoteSettings) *Client {
	client := resty.New()
	client.SetBaseURL(settings.URL)
	client.SetBasicAuth(settings.Username, settings.Password)
	client.SetHeader("User-Agent", "pyframe")

	return &Client{
		http:   client,
		prefix: path.Join("/remote.php/dav/files", settings.Username),
	}
}

// Prefix returns the server-side root under which user files live.
func (c *Client) Prefix() string {
	return c.prefix
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}

type multistatus struct {
	Responses []davResponse `xml:"response"`
}

type davResponse struct {
	Href     string   `xml:"href"`
	Propstat propstat `xml:"propstat"`
}

type propstat struct {
	Prop davProp `xml:"prop"`
}

type davProp struct {
	ResourceType resourceType `xml:"resourcetype"`
}

type resourceType struct {
	Collection *struct{} `xml:"collection"`
}

// List returns the immediate children of a remote directory.
func (c *Client) List(ctx context.Context, dir string) ([]Entry, error) {
	response, err := c.http.R().
		SetContext(ctx).
		SetHeader("Depth", "1").
		SetHeader("Content-Type", "application/xml").
		SetBody(propfindBody).
		Execute("PROPFIND", dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if response.StatusCode() != http.StatusMultiStatus {
		return nil, fmt.Errorf("listing %s: %s", dir, response.Status())
	}

	var status multistatus
	if err := xml.Unmarshal(response.Bytes(), &status); err != nil {
		return nil, fmt.Errorf("listing %s: parsing multistatus: %w", dir, err)
	}

	self := strings.TrimRight(dir, "/")
	entries := make([]Entry, 0, len(status.Responses))
	for _, r := range status.Responses {
		href, err := url.PathUnescape(r.Href)
		if err != nil {
			href = r.Href
		}
		href = strings.TrimRight(href, "/")
		if href == "" || href == self {
			// The listing includes the directory itself.
			continue
		}
		entries = append(entries, Entry{
			Path:  href,
			Name:  path.Base(href),
			IsDir: r.Propstat.Prop.ResourceType.Collection != nil,
		})
	}
	return entries, nil
}

// Download fetches a remote file into the given local path.
func (c *Client) Download(ctx context.Context, remotePath, localPath string) error {
	response, err := c.http.R().
		SetContext(ctx).
		Get(remotePath)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", remotePath, err)
	}
	if response.StatusCode() != http.StatusOK {
		return fmt.Errorf("downloading %s: %s", remotePath, response.Status())
	}
	if err := os.WriteFile(localPath, response.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}
