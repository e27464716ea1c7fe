package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fhevm-examples/exgen/internal/config"
	"github.com/fhevm-examples/exgen/internal/manifest"
	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/fhevm-examples/exgen/internal/render"
	"github.com/fhevm-examples/exgen/internal/scaffold"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// app bundles everything a generating command needs. It is built once per
// invocation and passed down explicitly.
type app struct {
	settings *config.Settings
	registry *registry.Registry
	renderer *render.Renderer
	sources  afero.Fs
	base     fs.FS // nil selects the embedded template
}

// loadApp resolves settings, loads and validates the catalog, and prepares
// the source and template filesystems. An invalid registry stops here,
// before anything touches the disk.
func loadApp() (*app, error) {
	s, err := config.Current()
	if err != nil {
		return nil, err
	}

	reg, origin, err := loadRegistry(s)
	if err != nil {
		return nil, err
	}
	if err := reg.Validate().Err(); err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", zap.String("origin", origin), zap.Int("examples", reg.Len()))

	r, err := render.New(reg)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(s.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving source root %s: %w", s.SourceRoot, err)
	}

	a := &app{
		settings: s,
		registry: reg,
		renderer: r,
		sources:  afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root)),
	}

	if s.TemplateDir != "" {
		info, err := os.Stat(s.TemplateDir)
		if err != nil {
			return nil, fmt.Errorf("template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template directory %s is not a directory", s.TemplateDir)
		}
		a.base = os.DirFS(s.TemplateDir)
	}

	return a, nil
}

// loadRegistry decodes the configured catalog (or the embedded one) into a
// registry without validating cross references.
func loadRegistry(s *config.Settings) (*registry.Registry, string, error) {
	var (
		catalog *manifest.Catalog
		origin  = manifest.DefaultOrigin
		err     error
	)
	if s.Catalog != "" {
		origin = s.Catalog
		catalog, err = manifest.Load(s.Catalog)
	} else {
		catalog, err = manifest.Default()
	}
	if err != nil {
		return nil, origin, err
	}
	return registry.FromCatalog(catalog), origin, nil
}

func (a *app) scaffoldConfig() scaffold.Config {
	return scaffold.Config{
		Registry: a.registry,
		Renderer: a.renderer,
		Sources:  a.sources,
		Output:   afero.NewOsFs(),
		Base:     a.base,
		Logger:   logger,
	}
}
