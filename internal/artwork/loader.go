// Package artwork turns card images into terminal cell art.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/peek/internal/model"
)

var errRemoteSource = errors.New("remote image sources are not fetched")

// Art is an image rendered to exactly Height lines of Width cells.
type Art struct {
	Lines    []string
	Fallback bool // true when the source could not be used
}

// String joins the art lines.
func (a Art) String() string {
	return strings.Join(a.Lines, "\n")
}

type cacheKey struct {
	source string
	width  int
	height int
}

// Loader decodes and renders images, caching the results.
type Loader struct {
	fsys        fs.FS
	concurrency int
	cache       *lru.Cache[cacheKey, Art]
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS resolves relative image paths inside fsys instead of the local
// filesystem. Used for the built-in sample catalog.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithCacheSize sets the number of rendered images kept.
func WithCacheSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.cache, _ = lru.New[cacheKey, Art](n)
		}
	}
}

// WithConcurrency limits how many images Preload decodes at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	cache, _ := lru.New[cacheKey, Art](model.DefaultArtCacheSize)
	l := &Loader{
		concurrency: model.DefaultPreloadConcurrency,
		cache:       cache,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Render returns source drawn into width x height cells. If the image cannot
// be loaded the fallback tile is returned instead; Render never fails.
func (l *Loader) Render(source string, width, height int) Art {
	if width <= 0 || height <= 0 {
		return Art{Fallback: true}
	}
	key := cacheKey{source: source, width: width, height: height}
	if art, ok := l.cache.Get(key); ok {
		return art
	}

	var art Art
	img, err := l.decode(source)
	if err != nil {
		log.Printf("artwork: %q unavailable, using fallback: %v", source, err)
		art = Fallback(width, height)
	} else {
		art = Art{Lines: halfBlocks(img, width, height)}
	}
	l.cache.Add(key, art)
	return art
}

// Preload renders every source into the cache. It stops scheduling work when
// ctx is cancelled and returns the context error in that case.
func (l *Loader) Preload(ctx context.Context, sources []string, width, height int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		if gctx.Err() != nil {
			break
		}
		src := src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			l.Render(src, width, height)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (l *Loader) decode(source string) (image.Image, error) {
	path, err := l.resolve(source)
	if err != nil {
		return nil, err
	}
	f, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decoding %s: empty image", path)
	}
	return img, nil
}

func (l *Loader) open(path string) (io.ReadCloser, error) {
	if l.fsys != nil && !filepath.IsAbs(path) {
		return l.fsys.Open(filepath.ToSlash(filepath.Clean(path)))
	}
	return os.Open(path)
}

func (l *Loader) resolve(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", errors.New("empty image source")
	}
	if strings.Contains(source, "://") {
		u, err := url.Parse(source)
		if err != nil {
			return "", fmt.Errorf("parsing image source: %w", err)
		}
		if u.Scheme != "file" {
			return "", errRemoteSource
		}
		return u.Path, nil
	}
	if strings.HasPrefix(source, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, source[2:]), nil
		}
	}
	return source, nil
}
