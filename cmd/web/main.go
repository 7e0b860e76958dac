// cmd/web/main.go
//
// Content service – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load config (.env → conf/global.yaml → ADEPT_ env → vault: secrets).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Open the MySQL pool and, when database.auto_migrate is set, apply
//     the collection and content schema.
//
//  4. Build repositories, the admin and public services, the mail sender,
//     and the optional GeoLite2 reader.
//
//  5. Build the chi router (bearer auth on /api, public /cms, /metrics,
//     /healthz) and serve until SIGINT or SIGTERM.
//
// Large comment blocks are framed by blank "//" lines; inline comments use
// a single "//".
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanizio/adept-content/internal/api"
	"github.com/yanizio/adept-content/internal/auth"
	"github.com/yanizio/adept-content/internal/collection"
	"github.com/yanizio/adept-content/internal/config"
	"github.com/yanizio/adept-content/internal/content"
	"github.com/yanizio/adept-content/internal/database"
	"github.com/yanizio/adept-content/internal/logger"
	"github.com/yanizio/adept-content/internal/message"
	"github.com/yanizio/adept-content/internal/requestinfo"
	"github.com/yanizio/adept-content/internal/server"
	"github.com/yanizio/adept-content/internal/service"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Database ─────────────────────────────────────────────────────
	//
	dsn, err := database.DSN(cfg.Database.DSN, cfg.Database.Password)
	if err != nil {
		logOut.Fatalw("bad database dsn", "err", err)
	}
	logOut.Info("connecting to database …")
	db, err := database.OpenWithOptions(dsn, cfg.Database.MaxOpen, cfg.Database.MaxIdle)
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	logOut.Info("database online")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logOut.Fatalw("migrate schema", "err", err)
		}
	}

	//
	// ── 2.  Services ─────────────────────────────────────────────────────
	//
	contents := content.NewRepository(cfg.Content.PerPage)
	admin := service.NewContentService(db, collection.NewRepository(), contents)

	tpls, err := message.LoadTemplates()
	if err != nil {
		logOut.Fatalw("mail templates", "err", err)
	}
	var sender message.Sender = message.Unconfigured{}
	if cfg.Mail.Host != "" {
		sender = message.NewSMTP(message.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			TLS:      cfg.Mail.TLS,
		})
	} else {
		logOut.Warn("mail.host is empty; contact form will answer 502")
	}
	public := service.NewCMSService(db, contents, tpls, sender, service.ContactConfig{
		From:    cfg.Mail.From,
		To:      cfg.Mail.ContactTo,
		Subject: cfg.Mail.ContactSubject,
	})

	if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
		logOut.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
	}

	//
	// ── 3.  HTTP ─────────────────────────────────────────────────────────
	//
	router := api.NewRouter(api.Options{
		Admin:          admin,
		Public:         public,
		Verifier:       auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		Log:            logOut,
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		ForceHTTPS:     cfg.HTTP.ForceHTTPS,
	})

	srv := server.New(cfg.HTTP.ListenAddr, router)
	if err := server.Run(ctx, srv, cfg.HTTP.ShutdownTimeout); err != nil {
		logOut.Errorw("http server", "err", err)
		return
	}
	logOut.Info("bye")
}
