package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/deniscmrg/investia-api/internal/domain"
)

// TickRepo relays live ticks between the terminal stream and WebSocket
// subscribers via redis pub/sub. Ticks are transient: nothing is stored,
// and order validation never reads from here; it always asks the
// terminal for a fresh quote.
type TickRepo struct {
	client *redis.Client
}

func NewTickRepo(client *redis.Client) *TickRepo {
	return &TickRepo{client: client}
}

func (r *TickRepo) Publish(ctx context.Context, tick domain.PriceTick) error {
	data, err := json.Marshal(tick)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, "ticks."+tick.Symbol, data).Err()
}

func (r *TickRepo) Subscribe(ctx context.Context, symbol string) *redis.PubSub {
	return r.client.Subscribe(ctx, "ticks."+symbol)
}
