package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/hungercard/backend/internal/common"
	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/blockchain/eth"
	"github.com/hungercard/backend/pkg/xcontext"
)

const defaultTokenBatchSize = 5

// WalletCaller reads the on-chain state of a wallet at approval time. The
// returned snapshot has no application id, the caller owns that association.
type WalletCaller interface {
	Snapshot(
		ctx context.Context,
		walletAddress string,
		nftConfigs []entity.NFTBoostConfig,
		tokenConfigs []entity.TokenBoostConfig,
	) (*entity.WalletSnapshot, error)
}

type walletCaller struct {
	ethClient   eth.EthClient
	priceCaller PriceCaller
}

func NewWalletCaller(ethClient eth.EthClient, priceCaller PriceCaller) *walletCaller {
	return &walletCaller{ethClient: ethClient, priceCaller: priceCaller}
}

func (c *walletCaller) Snapshot(
	ctx context.Context,
	walletAddress string,
	nftConfigs []entity.NFTBoostConfig,
	tokenConfigs []entity.TokenBoostConfig,
) (*entity.WalletSnapshot, error) {
	if !ethcommon.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("invalid wallet address %s", walletAddress)
	}

	owner := ethcommon.HexToAddress(walletAddress)

	ethBalance, err := c.ethClient.BalanceAt(ctx, owner)
	if err != nil {
		common.PromCounters[common.RpcFailureTotal].WithLabelValues("balance_at").Inc()
		return nil, err
	}

	nftHoldings, err := c.nftHoldings(ctx, owner, nftConfigs)
	if err != nil {
		return nil, err
	}

	tokenHoldings, err := c.tokenHoldings(ctx, owner, tokenConfigs)
	if err != nil {
		return nil, err
	}

	return &entity.WalletSnapshot{
		EthBalance:    ethBalance.String(),
		NftHoldings:   nftHoldings,
		TokenHoldings: tokenHoldings,
		SnapshotAt:    time.Now(),
	}, nil
}

func (c *walletCaller) nftHoldings(
	ctx context.Context, owner ethcommon.Address, configs []entity.NFTBoostConfig,
) ([]entity.NftHolding, error) {
	holdings := make([]entity.NftHolding, len(configs))
	err := c.forEachBatch(ctx, len(configs), func(ctx context.Context, i int) error {
		contract := ethcommon.HexToAddress(configs[i].ContractAddress)
		balance, err := eth.BalanceOf(ctx, c.ethClient, contract, owner)
		if err != nil {
			common.PromCounters[common.RpcFailureTotal].WithLabelValues("balance_of").Inc()
			return err
		}

		// No real collection has an int64-sized supply, a balance this big
		// is a broken or hostile contract. Int64() would silently truncate.
		if !balance.IsInt64() {
			return fmt.Errorf("balance %s of nft %s is out of range", balance, configs[i].ContractAddress)
		}

		holdings[i] = entity.NftHolding{
			ContractAddress: configs[i].ContractAddress,
			Balance:         balance.Int64(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return holdings, nil
}

func (c *walletCaller) tokenHoldings(
	ctx context.Context, owner ethcommon.Address, configs []entity.TokenBoostConfig,
) ([]entity.TokenHolding, error) {
	holdings := make([]entity.TokenHolding, len(configs))
	err := c.forEachBatch(ctx, len(configs), func(ctx context.Context, i int) error {
		contract := ethcommon.HexToAddress(configs[i].ContractAddress)
		balance, err := eth.BalanceOf(ctx, c.ethClient, contract, owner)
		if err != nil {
			common.PromCounters[common.RpcFailureTotal].WithLabelValues("balance_of").Inc()
			return err
		}

		holding := entity.TokenHolding{
			ContractAddress: configs[i].ContractAddress,
			Balance:         balance.String(),
		}

		if balance.Sign() > 0 {
			decimals, err := eth.Decimals(ctx, c.ethClient, contract)
			if err != nil {
				return err
			}

			price, err := c.priceCaller.GetPriceUSD(ctx, configs[i].ContractAddress)
			if err != nil {
				return err
			}

			holding.UsdValue = price * unitAmount(balance, decimals)
		}

		holdings[i] = holding
		return nil
	})
	if err != nil {
		return nil, err
	}

	return holdings, nil
}

// forEachBatch fans f out over n items in batches, so a long contract list
// does not hammer the RPC endpoints all at once.
func (c *walletCaller) forEachBatch(
	ctx context.Context, n int, f func(ctx context.Context, i int) error,
) error {
	batchSize := xcontext.Configs(ctx).Eth.TokenBatchSize
	if batchSize <= 0 {
		batchSize = defaultTokenBatchSize
	}

	for begin := 0; begin < n; begin += batchSize {
		end := begin + batchSize
		if end > n {
			end = n
		}

		g, groupCtx := errgroup.WithContext(ctx)
		for i := begin; i < end; i++ {
			i := i
			g.Go(func() error { return f(groupCtx, i) })
		}

		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}

// unitAmount converts a raw token balance to whole units as a float. Fine
// for USD threshold checks, not for accounting.
func unitAmount(balance *big.Int, decimals uint8) float64 {
	f := new(big.Float).SetInt(balance)
	f.Quo(f, new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)))
	amount, _ := f.Float64()
	return amount
}
