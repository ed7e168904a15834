package app

import (
	"context"
	"log"
	"os"
	"time"

	"iri-backend/internal/config"
	"iri-backend/internal/database"
	"iri-backend/internal/database/migration"
	dbpostgres "iri-backend/internal/database/postgres"
	"iri-backend/internal/database/seeder"
	"iri-backend/internal/infrastructure/cache"
	"iri-backend/internal/pkg/mailer"
	"iri-backend/internal/ws"
)

// Container owns every process-wide dependency.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Mailer mailer.Mailer
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Println("Migrations | schema up to date")

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Println("Seeder | reference data ensured")

	var mail mailer.Mailer
	if cfg.Mail.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From, logger)
	} else {
		mail = mailer.NewLogMailer(logger)
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Hub:    hub,
		Mailer: mail,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
