// Package remote mirrors image folders from a WebDAV share into the
// local image directory. Existing local files are left alone, so a
// sync only ever downloads what is missing.
package remote

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/pyframe/pyframe/internal/config"
)

// Filters drops remote items by name. All matching is done on the
// lowercased base name.
type Filters struct {
	files    map[string]bool
	folders  map[string]bool
	contains []string
}

func NewFilters(files, contains, folders []string) Filters {
	return Filters{
		files:    lowerSet(files),
		folders:  lowerSet(folders),
		contains: lowerAll(contains),
	}
}

func lowerSet(in []string) map[string]bool {
	out := make(map[string]bool, len(in))
	for _, s := range in {
		out[strings.ToLower(s)] = true
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Skip reports whether an item should be ignored.
func (f Filters) Skip(name string, isDir bool) bool {
	name = strings.ToLower(name)
	if isDir {
		return f.folders[name]
	}
	if f.files[name] {
		return true
	}
	for _, fragment := range f.contains {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

type job struct {
	remote string
	local  string
}

// Syncer walks the configured remote directories and downloads missing
// files through a fixed pool of workers.
type Syncer struct {
	client   *Client
	settings config.RemoteSettings
	filters  Filters

	downloaded atomic.Int64
	failed     atomic.Int64
}

func NewSyncer(settings config.RemoteSettings) *Syncer {
	return &Syncer{
		client:   NewClient(settings),
		settings: settings,
		filters:  NewFilters(settings.IgnoreFiles, settings.IgnoreContains, settings.IgnoreFolders),
	}
}

// Run performs one full sync pass. Individual download failures are
// logged and counted but do not abort the pass; an unreachable listing
// does.
func (s *Syncer) Run(ctx context.Context) error {
	defer s.client.Close()

	jobs := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < s.settings.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, jobs)
		}()
	}

	var walkErr error
	for _, dir := range s.settings.Dirs {
		source := path.Join(s.client.Prefix(), dir)
		if err := s.walk(ctx, source, s.settings.Destination, jobs); err != nil {
			log.Error("Sync walk failed", "dir", dir, "error", err)
			walkErr = err
		}
	}
	close(jobs)
	wg.Wait()

	log.Info("Sync finished",
		"downloaded", s.downloaded.Load(),
		"failed", s.failed.Load())
	if walkErr != nil {
		return walkErr
	}
	if n := s.failed.Load(); n > 0 {
		return fmt.Errorf("%d downloads failed", n)
	}
	return nil
}

// walk lists one remote directory, queues its missing files and
// recurses into its subdirectories.
func (s *Syncer) walk(ctx context.Context, source, destination string, jobs chan<- job) error {
	if err := os.MkdirAll(destination, 0755); err != nil {
		return err
	}

	log.Debug("Processing remote directory", "source", source)
	entries, err := s.client.List(ctx, source)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if s.filters.Skip(entry.Name, entry.IsDir) {
			log.Info("Ignoring remote item", "path", entry.Path)
			continue
		}
		if entry.IsDir {
			if err := s.walk(ctx, entry.Path, filepath.Join(destination, entry.Name), jobs); err != nil {
				return err
			}
			continue
		}

		local := filepath.Join(destination, entry.Name)
		if _, err := os.Stat(local); err == nil {
			log.Debug("File exists", "path", local)
			continue
		}
		select {
		case jobs <- job{remote: entry.Path, local: local}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *Syncer) worker(ctx context.Context, jobs <-chan job) {
	for j := range jobs {
		if err := s.client.Download(ctx, j.remote, j.local); err != nil {
			// Never leave a truncated file behind, the viewer would
			// pick it up as a corrupt image.
			os.Remove(j.local)
			log.Error("Download failed", "path", j.remote, "error", err)
			s.failed.Add(1)
			continue
		}
		log.Info("Downloaded", "path", j.local)
		s.downloaded.Add(1)
	}
}
