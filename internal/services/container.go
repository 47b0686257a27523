package services

import (
	"context"
	"fmt"

	"github.com/imodoiepale/kra-invoice-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Container holds all service dependencies
type Container struct {
	config      *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client

	VerifierService   VerifierServiceInterface
	ReconcilerService ReconcilerServiceInterface
	ExportService     ExportServiceInterface
	ProbeService      ProbeServiceInterface
	ReportStore       ReportStoreInterface
}

// NewContainer creates a new service container
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	container.initRedis()
	container.initServices()

	return container, nil
}

// initRedis initializes the Redis client used for report retention. A failed
// connection is not fatal; the report store falls back to memory.
func (c *Container) initRedis() {
	c.redisClient = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", c.config.Redis.Host, c.config.Redis.Port),
		Password:     c.config.Redis.Password,
		DB:           c.config.Redis.DB,
		PoolSize:     c.config.Redis.PoolSize,
		DialTimeout:  c.config.Redis.DialTimeout,
		ReadTimeout:  c.config.Redis.ReadTimeout,
		WriteTimeout: c.config.Redis.WriteTimeout,
	})

	ctx := context.Background()
	if err := c.redisClient.Ping(ctx).Err(); err != nil {
		c.logger.Warn("Redis connection failed, retaining reports in memory only")
		c.redisClient = nil
	} else {
		c.logger.Info("Redis connection established")
	}
}

// initServices initializes all services
func (c *Container) initServices() {
	c.ReportStore = NewReportStore(c.redisClient, c.config.KRA.ReportTTL, c.logger)
	c.VerifierService = NewVerifierService(c.config.KRA, c.logger)
	c.ReconcilerService = NewReconcilerService(c.config.KRA.StrictReconcile, c.logger)
	c.ExportService = NewExportService(c.logger)
	c.ProbeService = NewProbeService(c.config.KRA, c.logger)
}

// Close closes all service connections
func (c *Container) Close() error {
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}

// Health checks the health of all services
func (c *Container) Health() map[string]interface{} {
	health := make(map[string]interface{})

	if c.VerifierService != nil {
		health["verifier"] = c.VerifierService.Health()
	}
	if c.ReportStore != nil {
		health["reports"] = c.ReportStore.Health()
	}

	return health
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logrus.Logger {
	return c.logger
}
