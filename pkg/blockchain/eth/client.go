package eth

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hungercard/backend/config"
	"github.com/hungercard/backend/pkg/xcontext"
)

var RpcTimeOut = time.Second * 5

// A wrapper around ethclient so that callers can mock RPC access in tests.
type EthClient interface {
	Start(ctx context.Context)

	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
}

// Default implementation of the ETH client. Public RPC endpoints are often
// unstable, so the client keeps a list of them and rotates to the next one
// when a call fails.
type defaultEthClient struct {
	chain string
	rpcs  []string

	clients []*ethclient.Client

	lock sync.RWMutex
}

func NewEthClient(cfg config.EthConfigs) *defaultEthClient {
	return &defaultEthClient{
		chain: cfg.Chain,
		rpcs:  cfg.Rpcs,
	}
}

func (c *defaultEthClient) Start(ctx context.Context) {
	c.dial(ctx)
	go c.loopCheck(ctx)
}

// loopCheck periodically redials so that endpoints which recovered are put
// back into rotation.
func (c *defaultEthClient) loopCheck(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Minute):
			c.dial(ctx)
		}
	}
}

func (c *defaultEthClient) dial(ctx context.Context) {
	clients := make([]*ethclient.Client, 0, len(c.rpcs))
	for _, rpc := range c.rpcs {
		client, err := ethclient.DialContext(ctx, rpc)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot dial rpc %s: %v", rpc, err)
			continue
		}

		checkCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		_, err = client.BlockNumber(checkCtx)
		cancel()
		if err != nil {
			xcontext.Logger(ctx).Warnf("Unhealthy rpc %s: %v", rpc, err)
			client.Close()
			continue
		}

		clients = append(clients, client)
	}

	c.lock.Lock()
	old := c.clients
	c.clients = clients
	c.lock.Unlock()

	for _, client := range old {
		client.Close()
	}
}

func (c *defaultEthClient) healthyClients() []*ethclient.Client {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.clients
}

func execute[T any](
	ctx context.Context,
	c *defaultEthClient,
	f func(ctx context.Context, client *ethclient.Client) (T, error),
) (T, error) {
	var lastErr error
	for _, client := range c.healthyClients() {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		result, err := f(callCtx, client)
		cancel()
		if err == nil {
			return result, nil
		}

		xcontext.Logger(ctx).Warnf("Rpc call failed on chain %s: %v", c.chain, err)
		lastErr = err
	}

	var defaultT T
	if lastErr == nil {
		lastErr = errors.New("no healthy rpc endpoint")
	}

	return defaultT, lastErr
}

func (c *defaultEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	return execute(ctx, c, func(ctx context.Context, client *ethclient.Client) (uint64, error) {
		return client.BlockNumber(ctx)
	})
}

func (c *defaultEthClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return execute(ctx, c, func(ctx context.Context, client *ethclient.Client) (*big.Int, error) {
		return client.BalanceAt(ctx, account, nil)
	})
}

func (c *defaultEthClient) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return execute(ctx, c, func(ctx context.Context, client *ethclient.Client) ([]byte, error) {
		return client.CallContract(ctx, msg, nil)
	})
}
