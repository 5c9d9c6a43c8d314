package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/general/config"
	"relief-dispatch/internal/ports"
)

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("Connected to Redis")
	return client, nil
}

type incidentCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewIncidentCache caches incident reads under "incident:<id>" for ttl.
func NewIncidentCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) ports.IncidentCache {
	return &incidentCache{client: client, ttl: ttl, log: log}
}

func incidentKey(id uuid.UUID) string {
	return "incident:" + id.String()
}

func (c *incidentCache) Get(ctx context.Context, id uuid.UUID) (*incident.Incident, error) {
	payload, err := c.client.Get(ctx, incidentKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("incident cache: %w", ports.ErrNotFound)
		}
		return nil, fmt.Errorf("incident cache get: %w", err)
	}

	var inc incident.Incident
	if err := json.Unmarshal(payload, &inc); err != nil {
		// a stale or corrupt entry behaves like a miss
		c.log.WithError(err).WithField("incident_id", id).Warn("Dropping undecodable cache entry")
		_ = c.client.Del(ctx, incidentKey(id)).Err()
		return nil, fmt.Errorf("incident cache: %w", ports.ErrNotFound)
	}
	return &inc, nil
}

func (c *incidentCache) Set(ctx context.Context, inc *incident.Incident) error {
	payload, err := json.Marshal(inc)
	if err != nil {
		return fmt.Errorf("incident cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, incidentKey(inc.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("incident cache set: %w", err)
	}
	return nil
}

func (c *incidentCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, incidentKey(id)).Err(); err != nil {
		return fmt.Errorf("incident cache invalidate: %w", err)
	}
	return nil
}
