package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dungeons/server/internal/config"
	"github.com/dungeons/server/internal/core/event"
	"github.com/dungeons/server/internal/data"
	gonet "github.com/dungeons/server/internal/net"
	"github.com/dungeons/server/internal/persist"
	"github.com/dungeons/server/internal/scripting"
	"github.com/dungeons/server/internal/spectate"
	"github.com/dungeons/server/internal/system"
	"github.com/dungeons/server/internal/world"
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

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             Dungeons  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m         多人地城 · Go 遊戲伺服器          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m伺服器:\033[0m %s\n\n", serverName)
}

// displayWidth counts CJK runes as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func printSection(title string) {
	lineLen := 46 - displayWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - displayWidth(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printSkip(msg string) {
	fmt.Printf("  \033[90m-\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Load map and scripts
	printSection("資料載入")
	layout := data.DefaultMapLayout()
	if cfg.World.MapFile != "" {
		layout, err = data.LoadMapLayout(cfg.World.MapFile)
		if err != nil {
			return fmt.Errorf("map: %w", err)
		}
	}
	grid, err := layout.Grid()
	if err != nil {
		return fmt.Errorf("map %s: %w", layout.Name, err)
	}
	printStat("地圖列數", grid.Rows())
	printStat("地圖行數", grid.Cols())

	var progression world.Progression
	if cfg.Scripting.Dir != "" {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		progression = engine
		printOK("Lua 腳本載入完成")
	} else {
		printSkip("使用內建經驗公式")
	}
	fmt.Println()

	// 4. Event bus and optional journal
	bus := event.NewBus()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("資料庫")
	if cfg.Database.DSN != "" {
		db, journalDone, err := openJournal(ctx, cfg.Database, bus, log)
		if err != nil {
			log.Warn("事件日誌停用", zap.Error(err))
			printSkip("事件日誌停用")
		} else {
			defer func() {
				stop()
				<-journalDone
				db.Close()
			}()
			printOK("事件日誌啟用")
		}
	} else {
		printSkip("未設定資料庫")
	}
	fmt.Println()

	// 5. World
	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ws := world.NewState(grid, world.Options{
		MaxMonsters:  cfg.World.MaxMonsters,
		MaxTreasures: cfg.World.MaxTreasures,
		Rand:         rand.New(rand.NewSource(seed)),
		Progression:  progression,
		Bus:          bus,
	})
	bus.Flush()

	printSection("世界")
	printStat("怪物", len(ws.Monsters()))
	printStat("寶物", len(ws.Treasures()))
	fmt.Println()

	// 6. Network
	netServer, err := gonet.NewServer(cfg.Network.BindAddress, gonet.Options{
		QueueSize:     cfg.Network.InQueueSize,
		MaxLineLength: cfg.Network.MaxLineLength,
		WriteTimeout:  cfg.Network.WriteTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer netServer.Shutdown()
	go netServer.AcceptLoop()

	opts := system.LoopOptions{
		World:  ws,
		Bus:    bus,
		Source: netServer,
		Log:    log,
	}

	// 7. Optional spectator endpoint
	if cfg.Spectator.BindAddress != "" {
		hub := spectate.NewHub(cfg.Spectator.SendBuffer, log)
		defer hub.Close()
		httpServer := &http.Server{
			Addr:              cfg.Spectator.BindAddress,
			Handler:           hub.Mux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("觀戰服務失敗", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()
		opts.Spectators = hub
	}

	printSection("伺服器就緒")
	printReady(fmt.Sprintf("監聽位址 %s", netServer.Addr().String()))
	if cfg.Spectator.BindAddress != "" {
		printReady(fmt.Sprintf("觀戰位址 ws://%s%s", cfg.Spectator.BindAddress, spectate.Path))
	}
	fmt.Println()

	// 8. Game loop
	loop := system.NewLoop(opts)
	if err := loop.Run(ctx); err != nil {
		log.Error("遊戲迴圈終止", zap.Error(err))
		return fmt.Errorf("game loop: %w", err)
	}
	log.Info("收到關閉信號")
	log.Info("伺服器已停止", zap.Int("sessions", loop.Sessions()))
	return nil
}

// openJournal connects, migrates and starts the journal writer. The writer
// drains and stops when ctx is done, then closes the returned channel.
func openJournal(ctx context.Context, cfg config.DatabaseConfig, bus *event.Bus, log *zap.Logger) (*persist.DB, <-chan struct{}, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(connectCtx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := persist.RunMigrations(connectCtx, db.Pool); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	journal := persist.NewJournal(db, 0, log)
	journal.Attach(bus)
	done := make(chan struct{})
	go func() {
		defer close(done)
		journal.Run(ctx)
	}()
	return db, done, nil
}

// newLogger writes to the console and, when configured, appends JSON lines
// to cfg.File.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	atom := zap.NewAtomicLevelAt(level)

	var consoleEnc zapcore.Encoder
	if cfg.Format == "json" {
		consoleEnc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encCfg.ConsoleSeparator = "  "
		consoleEnc = zapcore.NewConsoleEncoder(encCfg)
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), atom),
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(f), atom))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
