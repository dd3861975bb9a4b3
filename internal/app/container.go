package app

import (
	"context"
	"log"
	"time"

	"github.com/onoja123/Modi-backend/internal/config"
	"github.com/onoja123/Modi-backend/internal/database/migration"
	"github.com/onoja123/Modi-backend/internal/domain/user"
	"github.com/onoja123/Modi-backend/internal/domain/waitlist"
	"github.com/onoja123/Modi-backend/internal/infrastructure/cache"
	"github.com/onoja123/Modi-backend/internal/infrastructure/mail"
	"github.com/onoja123/Modi-backend/internal/infrastructure/persistence/postgres"
	"github.com/onoja123/Modi-backend/internal/pkg/googleauth"
	"github.com/onoja123/Modi-backend/internal/pkg/jwt"
	"github.com/onoja123/Modi-backend/internal/pkg/otp"
	"github.com/onoja123/Modi-backend/internal/usecase"
)

const migrationsDir = "migrations"

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    *postgres.PostgresDB
	Cache *cache.Redis

	Users    user.Repository
	Waitlist waitlist.Repository

	JWT    jwt.Service
	Google googleauth.Client
	Mailer mail.Mailer

	Auth         usecase.AuthUsecase
	Profile      usecase.ProfileUsecase
	WaitlistFlow usecase.WaitlistUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := postgres.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := (migration.Runner{Dir: migrationsDir}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	users, err := postgres.NewUserRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	entries, err := postgres.NewWaitlistRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	mailer, err := mail.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.SecretKey, cfg.JWT.ExpiresIn)
	google := googleauth.New(googleauth.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Cache:        redisCache,
		Users:        users,
		Waitlist:     entries,
		JWT:          jwtSvc,
		Google:       google,
		Mailer:       mailer,
		Auth:         usecase.NewAuthUsecase(users, mailer, otp.NewGenerator(), jwtSvc, google),
		Profile:      usecase.NewProfileUsecase(users, redisCache),
		WaitlistFlow: usecase.NewWaitlistUsecase(entries, mailer, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("cache close error: %v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
