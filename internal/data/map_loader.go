package data

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"runtime"
	"slices"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed maps/*.yaml
var embeddedMaps embed.FS

// EmbeddedMaps returns the map content shipped with the binary.
func EmbeddedMaps() fs.FS {
	sub, err := fs.Sub(embeddedMaps, "maps")
	if err != nil {
		// "maps" is a compile-time embed path.
		panic(err)
	}
	return sub
}

// LoadMaps parses every *.yaml file at the root of fsys.
// Files are parsed in parallel; the result is sorted by map number.
// Two files declaring the same map number is an error.
func LoadMaps(ctx context.Context, fsys fs.FS) ([]*MapFile, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing map files: %w", err)
	}
	if len(names) == 0 {
		return nil, errors.New("no map files found")
	}

	files := make([]*MapFile, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("reading map file %s: %w", name, err)
			}
			f, err := ParseMap(name, raw)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b *MapFile) int {
		return int(a.Number) - int(b.Number)
	})
	for i := 1; i < len(files); i++ {
		if files[i].Number == files[i-1].Number {
			return nil, fmt.Errorf("map number %d declared by both %s and %s",
				files[i].Number, files[i-1].Source, files[i].Source)
		}
	}

	monsters, spawns := 0, 0
	for _, f := range files {
		monsters += len(f.Monsters)
		spawns += len(f.Spawns)
	}
	slog.Info("loaded map content", "maps", len(files), "monsters", monsters, "spawns", spawns)
	return files, nil
}

// ParseMap decodes one map file. Unknown keys are rejected.
func ParseMap(name string, raw []byte) (*MapFile, error) {
	f := &MapFile{}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing map file %s: empty document", name)
		}
		return nil, fmt.Errorf("parsing map file %s: %w", name, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("parsing map file %s: map name is required", name)
	}

	for i := range f.Spawns {
		if err := f.Spawns[i].checkPlacement(); err != nil {
			return nil, fmt.Errorf("parsing map file %s: spawn #%d: %w", name, i, err)
		}
	}

	f.Source = path.Base(name)
	f.Digest = blake2b.Sum256(raw)
	return f, nil
}
