package kafkaconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	obs "github.com/mohammed-shakir/h3-spatial-cache/internal/core/observability"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/invalidation"
)

// LayerEvictor drops every cached range-query result tagged with a layer.
type LayerEvictor interface {
	EvictLayer(ctx context.Context, layer string) error
}

type Consumer struct {
	cfg    Config
	logger *slog.Logger
	cache  LayerEvictor
}

func New(cfg Config, logger *slog.Logger, cache LayerEvictor) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{cfg: cfg, logger: logger, cache: cache}
}

// Start consumes layer-refresh events from Kafka until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	if c.cache == nil {
		return fmt.Errorf("kafkaconsumer: missing cache dependency")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Consumer.Group.Session.Timeout = c.cfg.SessionTimeout
	cfg.Consumer.Group.Heartbeat.Interval = c.cfg.Heartbeat
	cfg.Consumer.Group.Rebalance.Timeout = c.cfg.RebalanceTimeout
	if c.cfg.InitialOffsetOldest {
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	cfg.Consumer.Offsets.AutoCommit.Enable = true

	group, err := sarama.NewConsumerGroup(c.cfg.Brokers, c.cfg.GroupID, cfg)
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	defer func() { _ = group.Close() }()

	handler := &groupHandler{process: c.ProcessOne}

	c.logger.Info("layer-refresh consumer starting",
		"brokers", c.cfg.Brokers, "topic", c.cfg.Topic, "group", c.cfg.GroupID)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("layer-refresh consumer shutting down")
			return nil
		default:
			if err := group.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
				c.logger.Error("consumer error", "err", err)
				time.Sleep(2 * time.Second)
			}
		}
	}
}

// ProcessOne handles a single layer-refresh message.
func (c *Consumer) ProcessOne(ctx context.Context, msg *sarama.ConsumerMessage) error {
	start := time.Now()

	var ev invalidation.Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		obs.ObserveCacheOp("invalidation_decode", err, time.Since(start).Seconds())
		return fmt.Errorf("json decode: %w", err)
	}
	if err := ev.Validate(); err != nil {
		obs.ObserveCacheOp("invalidation_decode", err, time.Since(start).Seconds())
		return fmt.Errorf("invalid event: %w", err)
	}

	if err := c.cache.EvictLayer(ctx, ev.Layer); err != nil {
		obs.ObserveCacheOp("invalidation_evict", err, time.Since(start).Seconds())
		return fmt.Errorf("evict layer %q: %w", ev.Layer, err)
	}

	obs.ObserveCacheOp("invalidation_evict", nil, time.Since(start).Seconds())
	c.logger.Debug("evicted layer", "layer", ev.Layer, "version", ev.Version)
	return nil
}
