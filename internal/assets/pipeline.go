package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/freddyb/standup/internal/domain"
)

// manifest is the on-disk description produced by the asset build: a map of
// logical asset names to their hashed served paths, plus named css/js
// bundles listing logical names in include order.
type manifest struct {
	Assets map[string]string   `json:"assets"`
	CSS    map[string][]string `json:"css"`
	JS     map[string][]string `json:"js"`
}

// Pipeline resolves logical asset names and named bundles to served URLs.
// The manifest is read through an afero filesystem so tests can use an
// in-memory one.
type Pipeline struct {
	fs           afero.Fs
	manifestPath string
	baseURL      string

	mu sync.RWMutex
	m  manifest
}

// New loads the manifest and returns a ready Pipeline.
func New(fs afero.Fs, manifestPath, baseURL string) (*Pipeline, error) {
	p := &Pipeline{fs: fs, manifestPath: manifestPath, baseURL: baseURL}
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) reload() error {
	data, err := afero.ReadFile(p.fs, p.manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read asset manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse asset manifest: %w", err)
	}
	p.mu.Lock()
	p.m = m
	p.mu.Unlock()
	return nil
}

// Static resolves a logical asset name to its served URL path.
func (p *Pipeline) Static(name string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	served, ok := p.m.Assets[name]
	if !ok {
		return "", &domain.ResolutionError{Kind: "asset", Name: name}
	}
	return path.Join(p.baseURL, served), nil
}

// Stylesheet resolves a named css bundle to its stylesheet URLs in include
// order.
func (p *Pipeline) Stylesheet(bundle string) ([]string, error) {
	p.mu.RLock()
	names, ok := p.m.CSS[bundle]
	p.mu.RUnlock()
	if !ok {
		return nil, &domain.ResolutionError{Kind: "bundle", Name: bundle}
	}
	return p.resolveAll(names)
}

// Javascript resolves a named js bundle to its script URLs in include order.
func (p *Pipeline) Javascript(bundle string) ([]string, error) {
	p.mu.RLock()
	names, ok := p.m.JS[bundle]
	p.mu.RUnlock()
	if !ok {
		return nil, &domain.ResolutionError{Kind: "bundle", Name: bundle}
	}
	return p.resolveAll(names)
}

func (p *Pipeline) resolveAll(names []string) ([]string, error) {
	urls := make([]string, 0, len(names))
	for _, name := range names {
		u, err := p.Static(name)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// Watch reloads the manifest whenever the asset build rewrites it. Intended
// for development mode, where the build runs alongside the server. It blocks
// until the context is canceled.
func (p *Pipeline) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create manifest watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(p.manifestPath); err != nil {
		return fmt.Errorf("failed to watch manifest: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := p.reload(); err != nil {
				slog.Error("Failed to reload asset manifest", "error", err)
				continue
			}
			slog.Debug("Reloaded asset manifest", "path", p.manifestPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Manifest watcher error", "error", err)
		}
	}
}
