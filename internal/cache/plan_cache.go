package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/craftplan/backend-go/internal/config"
	"github.com/craftplan/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	planSummaryKeyPrefix = "planning:summary"
	planScanBatchSize    = 100
)

// PlanCache shields the dashboard endpoint from recomputing a full planning
// pass on every poll. Planning itself is cheap and deterministic, so only
// the summary is cached; item lists always come fresh.
type PlanCache interface {
	GetSummary(ctx context.Context, filter domain.PlanFilter) (*domain.PlanSummary, bool, error)
	SetSummary(ctx context.Context, filter domain.PlanFilter, summary domain.PlanSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPlanCache struct{}

func NewPlanCache(cfg config.CacheConfig) (PlanCache, error) {
	if !cfg.Enabled {
		return &noopPlanCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisPlanCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopPlanCache() PlanCache {
	return &noopPlanCache{}
}

func (c *redisPlanCache) GetSummary(ctx context.Context, filter domain.PlanFilter) (*domain.PlanSummary, bool, error) {
	key := buildPlanSummaryKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.PlanSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode plan summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisPlanCache) SetSummary(ctx context.Context, filter domain.PlanFilter, summary domain.PlanSummary) error {
	key := buildPlanSummaryKey(filter)
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode plan summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPlanCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, planSummaryKeyPrefix, planScanBatchSize)
}

func (n *noopPlanCache) GetSummary(ctx context.Context, filter domain.PlanFilter) (*domain.PlanSummary, bool, error) {
	return nil, false, nil
}

func (n *noopPlanCache) SetSummary(ctx context.Context, filter domain.PlanFilter, summary domain.PlanSummary) error {
	return nil
}

func (n *noopPlanCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildPlanSummaryKey(filter domain.PlanFilter) string {
	return fmt.Sprintf("%s:%s", planSummaryKeyPrefix, planFilterHash(filter))
}

func planFilterHash(filter domain.PlanFilter) string {
	parts := []string{}

	if filter.Category != "" {
		parts = append(parts, "category="+domain.NormalizeCategory(filter.Category))
	}
	if filter.Status != "" {
		parts = append(parts, "status="+strings.ToLower(strings.TrimSpace(string(filter.Status))))
	}
	if filter.NeedsReorder != nil {
		parts = append(parts, fmt.Sprintf("needs_reorder=%t", *filter.NeedsReorder))
	}
	if filter.HorizonDays > 0 {
		parts = append(parts, fmt.Sprintf("horizon=%d", filter.HorizonDays))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
