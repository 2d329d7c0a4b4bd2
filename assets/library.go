package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/ecs/component"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Manifest lists the logical textures and animated sheets of a game.
type Manifest struct {
	FPS      float64           `yaml:"fps"`
	Textures map[string]string `yaml:"textures"`
	Sheets   map[string]string `yaml:"sheets"`
}

// Library holds decoded images and parsed sprite sheets. GPU textures are
// created lazily on first draw so the library can be used without a window.
type Library struct {
	fsys         fs.FS
	manifestPath string
	log          *zap.Logger

	manifest Manifest
	sheets   map[string]*SpriteSheet
	images   map[string]image.Image
	hashes   map[string]uint64
	textures map[string]*ebiten.Image
	missing  *ebiten.Image
}

type loadResult struct {
	mu      sync.Mutex
	sheets  map[string]*SpriteSheet
	images  map[string]image.Image
	hashes  map[string]uint64
	changed []string
}

// Load reads the manifest and every file it names, in parallel.
func Load(ctx context.Context, fsys fs.FS, manifestPath string, log *zap.Logger) (*Library, error) {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Library{
		fsys:         fsys,
		manifestPath: manifestPath,
		log:          log,
		sheets:       map[string]*SpriteSheet{},
		images:       map[string]image.Image{},
		hashes:       map[string]uint64{},
		textures:     map[string]*ebiten.Image{},
	}
	if _, err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads every asset and swaps in the ones whose content hash
// changed. It returns how many files changed.
func (l *Library) Reload(ctx context.Context) (int, error) {
	data, err := fs.ReadFile(l.fsys, l.manifestPath)
	if err != nil {
		return 0, fmt.Errorf("assets: read manifest %s: %w", l.manifestPath, err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return 0, fmt.Errorf("assets: decode manifest %s: %w", l.manifestPath, err)
	}
	if manifest.FPS <= 0 {
		manifest.FPS = DefaultFPS
	}

	res := &loadResult{
		sheets: map[string]*SpriteSheet{},
		images: map[string]image.Image{},
		hashes: map[string]uint64{},
	}
	base := path.Dir(l.manifestPath)

	g, gctx := errgroup.WithContext(ctx)
	for _, file := range manifest.Textures {
		file := path.Join(base, file)
		g.Go(func() error {
			return l.loadImage(gctx, res, file)
		})
	}
	for id, file := range manifest.Sheets {
		id, file := id, path.Join(base, file)
		g.Go(func() error {
			return l.loadSheet(gctx, res, id, file, manifest.FPS)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for _, file := range res.changed {
		if tex, ok := l.textures[file]; ok {
			tex.Deallocate()
			delete(l.textures, file)
		}
	}
	l.manifest = manifest
	l.sheets = res.sheets
	l.images = res.images
	l.hashes = res.hashes

	if len(res.changed) > 0 {
		l.log.Info("assets loaded", zap.Int("changed", len(res.changed)), zap.Strings("files", res.changed))
	}
	return len(res.changed), nil
}

func (l *Library) readFile(ctx context.Context, file string) ([]byte, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, 0, fmt.Errorf("assets: read %s: %w", file, err)
	}
	return data, xxhash.Sum64(data), nil
}

func (l *Library) loadImage(ctx context.Context, res *loadResult, file string) error {
	data, sum, err := l.readFile(ctx, file)
	if err != nil {
		return err
	}
	if prev, ok := l.hashes[file]; ok && prev == sum {
		res.mu.Lock()
		res.images[file] = l.images[file]
		res.hashes[file] = sum
		res.mu.Unlock()
		return nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("assets: decode %s: %w", file, err)
	}

	res.mu.Lock()
	res.images[file] = img
	res.hashes[file] = sum
	res.changed = append(res.changed, file)
	res.mu.Unlock()
	return nil
}

func (l *Library) loadSheet(ctx context.Context, res *loadResult, id, file string, fps float64) error {
	data, sum, err := l.readFile(ctx, file)
	if err != nil {
		return err
	}

	var sheet *SpriteSheet
	if prev, ok := l.hashes[file]; ok && prev == sum && l.sheets[id] != nil {
		sheet = l.sheets[id]
	} else {
		sheet, err = ParseSpriteSheet(data, fps)
		if err != nil {
			return fmt.Errorf("assets: sheet %s: %w", id, err)
		}
		sheet.Image = path.Join(path.Dir(file), sheet.Image)
		res.mu.Lock()
		res.changed = append(res.changed, file)
		res.mu.Unlock()
	}

	res.mu.Lock()
	res.sheets[id] = sheet
	res.hashes[file] = sum
	res.mu.Unlock()

	if sheet.Image == "" {
		return nil
	}
	return l.loadImage(ctx, res, sheet.Image)
}

// Sheet returns an animated sprite sheet by id.
func (l *Library) Sheet(id string) (*SpriteSheet, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.sheets[id]
	return s, ok
}

func (l *Library) imagePath(ref component.TextureRef) (string, bool) {
	if ref.Animated() {
		s, ok := l.sheets[ref.Sheet]
		if !ok || s.Image == "" {
			return "", false
		}
		return s.Image, true
	}
	file, ok := l.manifest.Textures[ref.Name]
	if !ok {
		return "", false
	}
	return path.Join(path.Dir(l.manifestPath), file), true
}

// TextureSize returns the pixel size of the referenced image.
func (l *Library) TextureSize(ref component.TextureRef) (float64, float64, bool) {
	if l == nil {
		return 0, 0, false
	}
	file, ok := l.imagePath(ref)
	if !ok {
		return 0, 0, false
	}
	img, ok := l.images[file]
	if !ok || img == nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy()), true
}

// Texture returns the GPU image for ref, or a magenta placeholder when it is unknown.
func (l *Library) Texture(ref component.TextureRef) *ebiten.Image {
	file, ok := l.imagePath(ref)
	if !ok {
		return l.placeholder()
	}
	if tex, ok := l.textures[file]; ok {
		return tex
	}
	img, ok := l.images[file]
	if !ok || img == nil {
		return l.placeholder()
	}
	tex := ebiten.NewImageFromImage(img)
	l.textures[file] = tex
	return tex
}

func (l *Library) placeholder() *ebiten.Image {
	if l.missing == nil {
		l.missing = ebiten.NewImage(16, 16)
		l.missing.Fill(color.RGBA{R: 0xff, B: 0xff, A: 0xff})
	}
	return l.missing
}

// TextureNames returns the logical texture names from the manifest, sorted.
func (l *Library) TextureNames() []string {
	names := make([]string, 0, len(l.manifest.Textures))
	for name := range l.manifest.Textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
