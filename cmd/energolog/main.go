package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	httpadapter "github.com/zhukovg/energolog/internal/adapters/http"
	"github.com/zhukovg/energolog/internal/adapters/llm"
	"github.com/zhukovg/energolog/internal/adapters/notify"
	"github.com/zhukovg/energolog/internal/adapters/sheets"
	firestorestore "github.com/zhukovg/energolog/internal/adapters/storage/firestore"
	memstore "github.com/zhukovg/energolog/internal/adapters/storage/memory"
	sqlitestore "github.com/zhukovg/energolog/internal/adapters/storage/sqlite"
	"github.com/zhukovg/energolog/internal/app/dialog"
	"github.com/zhukovg/energolog/internal/classify"
	"github.com/zhukovg/energolog/internal/config"
	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/gateway"
	"github.com/zhukovg/energolog/internal/observability"
	"github.com/zhukovg/energolog/internal/scheduler"
	"github.com/zhukovg/energolog/internal/taxonomy"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	log := observability.Logger()

	cfg := config.Load()
	if *configPath != "" {
		if err := config.LoadFile(cfg, *configPath); err != nil {
			log.Error("failed to load config file", "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Error("unknown time zone", "zone", cfg.TimeZone, "error", err)
		os.Exit(1)
	}

	store, err := taxonomy.Open(cfg.TaxonomyPath)
	if err != nil {
		log.Error("failed to open taxonomy", "error", err)
		os.Exit(1)
	}

	// Completion client: mock for local mode, Vertex otherwise.
	var completion domain.CompletionClient
	if cfg.UseMockLLM {
		log.Info("using mock completion client")
		completion = llm.NewMockClient()
	} else {
		log.Info("using Vertex completion client", "model", cfg.ModelName)
		completion, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Error("failed to init Vertex client", "error", err)
			os.Exit(1)
		}
	}
	analyzer := classify.NewExternal(completion, store, cfg.MinTranscriptChars)

	// Tabular backend.
	var appender domain.RowAppender
	switch cfg.StorageBackend {
	case "sheets":
		log.Info("using Google Sheets backend", "spreadsheet_id", cfg.SpreadsheetID)
		var opts []option.ClientOption
		if creds := os.Getenv("GOOGLE_CREDENTIALS"); creds != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
		}
		appender, err = sheets.New(ctx, cfg.SpreadsheetID, cfg.SheetRange, opts...)
		if err != nil {
			log.Error("failed to init sheets backend", "error", err)
			os.Exit(1)
		}
	case "firestore":
		log.Info("using Firestore backend", "project", cfg.GCPProjectID)
		fs, err := firestorestore.NewAppender(ctx, cfg.GCPProjectID, cfg.FirestoreCollection)
		if err != nil {
			log.Error("failed to init firestore backend", "error", err)
			os.Exit(1)
		}
		defer fs.Close()
		appender = fs
	case "sqlite":
		log.Info("using sqlite backend", "path", cfg.SQLitePath)
		db, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			log.Error("failed to open sqlite backend", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		appender = db
	default:
		log.Info("using in-memory backend")
		appender = memstore.NewRowAppender()
	}

	var notifier domain.Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.WebhookURL)
	} else {
		notifier = notify.NewLog()
	}

	sched := scheduler.New(notifier, loc, cfg.ReminderText)
	defer sched.Stop()

	gw := gateway.New(appender, cfg.PacingDelay)
	svc := dialog.NewService(classify.NewLexical(store), analyzer, gw, sched, loc)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpadapter.NewServer(svc),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("energolog listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("goodbye")
}
