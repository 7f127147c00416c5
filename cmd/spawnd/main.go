package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/spawnd/internal/config"
	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/data"
	"github.com/l1jgo/spawnd/internal/persist"
	"github.com/l1jgo/spawnd/internal/scripting"
	"github.com/l1jgo/spawnd/internal/system"
	"github.com/l1jgo/spawnd/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("SPAWND_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	fmt.Printf("\n  \033[1m%s\033[0m\n\n", cfg.Server.Name)

	// 3. Spawn journal sinks
	printSection("storage")
	var sinks []system.SpawnSink
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		sinks = append(sinks, persist.NewSpawnLogRepo(db))
	}
	var archive *persist.ArchiveWriter
	if cfg.Spawn.ArchiveDir != "" {
		archive = persist.NewArchiveWriter(cfg.Spawn.ArchiveDir, "spawns")
		defer func() {
			if err := archive.Close(); err != nil {
				log.Error("close spawn archive", zap.Error(err))
			}
		}()
		sinks = append(sinks, archive)
		printOK("spawn archive at " + cfg.Spawn.ArchiveDir)
	}
	fmt.Println()

	// 4. Data
	printSection("data")
	items, err := data.LoadItemTable(cfg.Data.Items)
	if err != nil {
		return fmt.Errorf("load item table: %w", err)
	}
	printStat("item types", items.Count())
	var loot *data.LootTables
	if cfg.Data.Loot != "" {
		loot, err = data.LoadLootTables(cfg.Data.Loot, items)
		if err != nil {
			return fmt.Errorf("load loot tables: %w", err)
		}
		printStat("loot tables", loot.Count())
	}
	fmt.Println()

	// 5. World state and systems
	worldState := world.NewState()

	runner := coresys.NewRunner()
	runner.SetParallelism(cfg.Server.Parallelism)
	runner.Register(system.NewMovementSystem(worldState))
	runner.Register(system.NewItemLifetimeSystem(worldState, log, cfg.Spawn.ItemLifetimeTicks))

	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, worldState, items, loot, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		runner.Register(system.NewScriptSystem(worldState, engine))
		printOK("Lua scripts loaded from " + cfg.Scripting.Dir)
	}

	spawner := system.NewSpawnerSystem(worldState, log)
	runner.Register(spawner)
	journal := system.NewSpawnJournalSystem(worldState, items, log,
		cfg.Spawn.JournalBatchSize, cfg.Spawn.JournalFlushTicks, sinks...)
	runner.Register(journal)
	runner.Register(system.NewCleanupSystem(worldState, log))

	// 6. Start loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Server.TickRate)
	defer ticker.Stop()

	log.Info("simulation started",
		zap.Duration("tick_rate", cfg.Server.TickRate),
		zap.Int("parallelism", cfg.Server.Parallelism),
		zap.Int("sinks", len(sinks)),
	)

	for {
		select {
		case <-ticker.C:
			worldState.AdvanceTick()
			runner.Tick(cfg.Server.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			journal.Flush()
			log.Info("simulation stopped",
				zap.Uint64("ticks", runner.Ticks()),
				zap.Uint64("spawned", spawner.Spawned()),
				zap.Int("alive", worldState.ECS.Len()),
			)
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
