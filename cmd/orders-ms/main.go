package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"
	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/dialects/postgresql"

	"github.com/sidgim/orders-ms/config"
	"github.com/sidgim/orders-ms/httputils"
	"github.com/sidgim/orders-ms/provider/payments"
	"github.com/sidgim/orders-ms/provider/products"
	"github.com/sidgim/orders-ms/services/orders"
	"github.com/sidgim/orders-ms/store"
)

var (
	VERSION = "dev"
	configF = flag.String("config", "configs/base.yaml", "Path to config file.")
)

func main() {
	flag.Parse()
	defaultLogger("INFO")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	zap.L().Info("Starting...", zap.String("version", VERSION))
	defer func() { zap.L().Info("Done.") }()
	handleTerm(cancel)

	cfg, err := config.Load(*configF)
	if err != nil {
		zap.L().Panic("Failed load config.", zap.Error(err))
	}
	syncLogger := productionLogger(cfg.App.LogLevel)
	defer syncLogger()

	// The bus speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true

	sqlDB := setupPostgres(cfg.Postgres.Conn, cfg.Postgres.ConnMaxLifetime, cfg.Postgres.MaxOpenConns, cfg.Postgres.MaxIdleConns)
	db := reform.NewDB(sqlDB, postgresql.Dialect, reform.NewPrintfLogger(zap.L().Sugar().Debugf))
	if _, err := db.Exec("SELECT version();"); err != nil {
		zap.L().Panic("Failed to check version to PostgreSQL.", zap.Error(err))
	}

	nc, err := nats.Connect(cfg.NATS.URL,
		nats.Name(cfg.App.Name),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		zap.L().Panic("Failed to connect to NATS.", zap.Error(err))
	}
	defer nc.Close()
	zap.L().Info("NATS - Connected!")

	svc := orders.NewService(
		store.NewOrdersPG(db),
		products.NewClient(nc, cfg.NATS.RequestTimeout),
		payments.NewClient(nc, cfg.NATS.RequestTimeout),
		cfg.Orders.Currency,
		cfg.Orders.PageLimit,
	)
	srv := orders.NewServer(nc, svc, cfg.NATS.HandleTimeout)
	if err := srv.Subscribe(); err != nil {
		zap.L().Panic("Failed subscribe.", zap.Error(err))
	}

	debugServer := &http.Server{Addr: cfg.App.DebugAddr, Handler: httputils.DebugMux()}
	go func() {
		zap.L().Info("Debug server listening.", zap.String("address", cfg.App.DebugAddr))
		if err := debugServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Error("Debug server failed.", zap.Error(err))
		}
	}()

	<-ctx.Done()

	// let in-flight requests finish before closing the connection
	if err := nc.Drain(); err != nil {
		zap.L().Error("Failed drain NATS connection.", zap.Error(err))
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer shutdownCancel()
	if err := debugServer.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Failed shutdown debug server.", zap.Error(err))
	}
}

// Configure configure zap logger.
//
// Available values of level:
// - DEBUG
// - INFO
// - WARN
// - ERROR
// - DPANIC
// - PANIC
// - FATAL
func defaultLogger(levelSet string) {
	level := zapcore.InfoLevel
	if err := level.Set(levelSet); err != nil {
		panic(err)
	}
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(level)
	l, err := config.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(l)
	zap.RedirectStdLog(l.Named("stdlog"))
}

func productionLogger(levelSet string) func() error {
	zap.L().Sync()

	level := zapcore.InfoLevel
	if err := level.Set(levelSet); err != nil {
		panic(err)
	}

	config := zap.NewProductionConfig()
	config.Development = false
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.Level.SetLevel(level)

	l, err := config.Build(
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(l)
	zap.RedirectStdLog(l.Named("stdlog"))

	return l.Sync
}

func handleTerm(cancel context.CancelFunc) {
	// handle termination signals: first one gracefully, force exit on the second one
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, unix.SIGTERM, unix.SIGINT)
	go func() {
		s := <-signals
		zap.L().Warn("Shutting down.", zap.String("signal", unix.SignalName(s.(unix.Signal))))
		cancel()

		s = <-signals
		zap.L().Panic("Exiting!", zap.String("signal", unix.SignalName(s.(unix.Signal))))
	}()
}

func setupPostgres(conn string, maxLifetime time.Duration, maxOpen, maxIdle int) *sql.DB {
	sqlDB, err := sql.Open("postgres", conn)
	if err != nil {
		zap.L().Panic("Failed to connect to PostgreSQL.", zap.Error(err))
	}
	sqlDB.SetConnMaxLifetime(maxLifetime)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if err = sqlDB.Ping(); err != nil {
		zap.L().Panic("Failed to connect ping PostgreSQL.", zap.Error(err))
	}
	zap.L().Info("Postgres - Connected!")

	return sqlDB
}
