package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/udisondev/worldseed/internal/config"
	"github.com/udisondev/worldseed/internal/data"
	"github.com/udisondev/worldseed/internal/db"
	"github.com/udisondev/worldseed/internal/entity"
	"github.com/udisondev/worldseed/internal/model"
	"github.com/udisondev/worldseed/internal/seed"
)

// idNamespace делает идентификаторы сущностей воспроизводимыми между запусками.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("worldseed"))

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Path()
	cfg, err := config.LoadSeeder(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
	slog.Info("worldseed starting", "config", cfgPath, "log_level", cfg.LogLevel)

	var content fs.FS = data.EmbeddedMaps()
	if cfg.ContentDir != "" {
		content = os.DirFS(cfg.ContentDir)
	}
	files, err := data.LoadMaps(ctx, content)
	if err != nil {
		return fmt.Errorf("loading map content: %w", err)
	}

	catalog := data.NewAttributeCatalog()
	world := model.NewWorldConfiguration(catalog)
	ec := entity.NewContext(entity.WithNamespace(idNamespace))

	inits := seed.NewContentInitializers(files, seed.NewBinder(catalog))
	report, err := seed.NewSeeder(seed.Options{SealOnFinish: cfg.SealOnFinish}).Run(ec, world, inits)
	if err != nil {
		return fmt.Errorf("seeding world: %w", err)
	}
	printReport(report, ec)

	if !cfg.Persist {
		return nil
	}

	dsn := cfg.Database.DSN()
	if _, err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	database, err := db.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	digests := make(map[int16][]byte, len(files))
	for _, f := range files {
		digests[f.Number] = f.Digest[:]
	}

	stats, err := db.NewWorldRepository(database.Pool()).Save(ctx, world, digests, cfg.Force)
	if err != nil {
		return fmt.Errorf("persisting world: %w", err)
	}
	fmt.Printf("persisted: %d maps written, %d unchanged\n", stats.Maps, len(stats.Unchanged))

	return nil
}

func printReport(r *seed.Report, ec *entity.Context) {
	for _, m := range r.Maps {
		fmt.Printf("map %3d %-16s monsters=%-3d spawns=%-3d instances=%d\n",
			m.Number, m.Name, m.Monsters, m.Spawns, m.Instances)
	}
	fmt.Printf("seeded %d maps (%d skipped): %d monsters, %d spawns, %d objects in %s\n",
		len(r.Maps), len(r.Skipped), r.Monsters, r.Spawns, ec.Len(), r.Duration)
}
