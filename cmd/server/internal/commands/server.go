package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tenantkit/tenantkit/internal/api"
	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/logger"
	"github.com/tenantkit/tenantkit/internal/service"
	"github.com/tenantkit/tenantkit/internal/store"
	memorystore "github.com/tenantkit/tenantkit/internal/store/memory"
	postgresstore "github.com/tenantkit/tenantkit/internal/store/postgres"
	"github.com/tenantkit/tenantkit/internal/tenant"
)

type ServerCmd struct {
	// Server configuration
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:8080" env:"TENANTKIT_LISTEN"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"*" env:"TENANTKIT_CORS_ORIGINS"`

	// Token configuration
	Secret   string        `help:"shared secret for HMAC signing of access tokens" env:"SECRET"`
	TokenTTL time.Duration `help:"access token lifetime" default:"24h" env:"TENANTKIT_TOKEN_TTL"`

	// Store configuration
	StoreType     string             `help:"store type (memory or postgres)" default:"memory" env:"TENANTKIT_STORE_TYPE" enum:"memory,postgres"`
	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`
}

type PostgresStoreFlags struct {
	// Connection Configuration
	ConnString string `help:"PostgreSQL connection string" env:"POSTGRES_CONNECTION_STRING"`

	// Connection Pool Configuration
	MaxConns        int32 `help:"maximum number of connections in pool" default:"20"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"5"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`

	// Migration Configuration
	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"TENANTKIT_POSTGRES_AUTO_MIGRATE"`
}

func (c *ServerCmd) Validate() error {
	if c.Secret == "" {
		return errors.New("token signing secret is required (--secret or SECRET)")
	}
	return nil
}

func (c *ServerCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting server")

	var (
		orgStore      store.OrganizationStore
		receiverStore store.ReceiverStore
		userStore     store.UserStore
		profileStore  store.UserProfileStore
		settingStore  store.UserSettingStore
		bookmarkStore store.UserBookmarkStore
	)

	switch c.StoreType {
	case "postgres":
		poolCfg := &postgresstore.PoolConfig{
			ConnString:      c.PostgresStore.ConnString,
			MaxConns:        c.PostgresStore.MaxConns,
			MinConns:        c.PostgresStore.MinConns,
			MaxConnLifetime: c.PostgresStore.MaxConnLifetime,
			MaxConnIdleTime: c.PostgresStore.MaxConnIdleTime,
		}
		pool, err := postgresstore.NewPool(ctx, poolCfg)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		if c.PostgresStore.AutoMigrate {
			if err := postgresstore.RunMigrations(ctx, pool); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		orgStore = postgresstore.NewOrganizationStore(pool)
		receiverStore = postgresstore.NewReceiverStore(pool)
		userStore = postgresstore.NewUserStore(pool)
		profileStore = postgresstore.NewUserProfileStore(pool)
		settingStore = postgresstore.NewUserSettingStore(pool)
		bookmarkStore = postgresstore.NewUserBookmarkStore(pool)

		log.Info().Msg("Using PostgreSQL stores with shared connection pool")

	default:
		orgStore = memorystore.NewOrganizationStore()
		receiverStore = memorystore.NewReceiverStore()
		userStore = memorystore.NewUserStore()
		profileStore = memorystore.NewUserProfileStore()
		settingStore = memorystore.NewUserSettingStore()
		bookmarkStore = memorystore.NewUserBookmarkStore()

		log.Info().Msg("Using in-memory stores")
	}

	tokens := auth.NewTokenManager(c.Secret, c.TokenTTL)
	resolver := tenant.NewResolver(orgStore)
	pager := service.NewPager(settingStore)

	orgService := service.NewOrganizationService(orgStore, userStore, receiverStore, bookmarkStore, resolver, pager)

	services := api.Services{
		Auth:          service.NewAuthService(userStore, profileStore, settingStore, bookmarkStore, tokens),
		Organizations: orgService,
		Receivers:     service.NewReceiverService(receiverStore, bookmarkStore, orgService, pager),
		Users:         service.NewUserService(userStore, profileStore, settingStore, bookmarkStore, orgStore, pager),
		Profiles:      service.NewUserProfileService(profileStore),
		Settings:      service.NewUserSettingService(settingStore),
		Bookmarks:     service.NewUserBookmarkService(bookmarkStore),
	}

	server := api.NewServer(api.Config{CORSOrigins: c.CORSOrigins}, services, tokens, log)

	log.Info().Str("addr", c.Listen).Msg("Starting HTTP server")
	return configureHTTPServer(c.Listen, server.Handler()).ListenAndServe()
}
