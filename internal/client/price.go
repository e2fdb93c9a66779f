package client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/hungercard/backend/internal/common"
	"github.com/hungercard/backend/pkg/api/coingecko"
	"github.com/hungercard/backend/pkg/xcontext"
)

type PriceCaller interface {
	GetPriceUSD(ctx context.Context, contractAddress string) (float64, error)
}

type priceCaller struct {
	redisClient *redis.Client
	oracle      coingecko.IEndpoint
}

// NewPriceCaller wraps the price oracle with a redis cache. A nil redis
// client disables caching, every call hits the oracle.
func NewPriceCaller(redisClient *redis.Client, oracle coingecko.IEndpoint) *priceCaller {
	return &priceCaller{redisClient: redisClient, oracle: oracle}
}

func (c *priceCaller) GetPriceUSD(ctx context.Context, contractAddress string) (float64, error) {
	key := common.RedisKeyTokenPrice(contractAddress)
	if c.redisClient != nil {
		cached, err := c.redisClient.Get(ctx, key).Result()
		if err == nil {
			price, err := strconv.ParseFloat(cached, 64)
			if err == nil {
				return price, nil
			}
		} else if err != redis.Nil {
			xcontext.Logger(ctx).Warnf("Cannot get cached price of %s: %v", contractAddress, err)
		}
	}

	price, err := c.oracle.GetTokenPriceUSD(ctx, contractAddress)
	if err != nil {
		return 0, err
	}

	if c.redisClient != nil {
		ttl := xcontext.Configs(ctx).Eth.PriceCacheTTL
		err := c.redisClient.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), ttl).Err()
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache price of %s: %v", contractAddress, err)
		}
	}

	return price, nil
}
