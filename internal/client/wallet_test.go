package client_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/hungercard/backend/internal/client"
	"github.com/hungercard/backend/internal/common"
	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/testutil"
)

type fixedPriceCaller struct {
	prices map[string]float64
}

func (c *fixedPriceCaller) GetPriceUSD(ctx context.Context, contractAddress string) (float64, error) {
	return c.prices[contractAddress], nil
}

func Test_walletCaller_Snapshot(t *testing.T) {
	ctx := testutil.MockContext()

	oneToken := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	ethClient := &testutil.MockEthClient{
		BalanceAtFunc: func(ctx context.Context, account ethcommon.Address) (*big.Int, error) {
			return new(big.Int).Mul(big.NewInt(2), oneToken), nil
		},
		CallContractFunc: func(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
			// A four-byte payload is a decimals() call, balanceOf carries
			// the padded owner address as well.
			if len(msg.Data) == 4 {
				return ethcommon.LeftPadBytes(big.NewInt(18).Bytes(), 32), nil
			}

			// Hex() returns the checksummed form, compare address values.
			if *msg.To == ethcommon.HexToAddress("0x00000000000000000000000000000000000000aa") {
				return ethcommon.LeftPadBytes(big.NewInt(3).Bytes(), 32), nil
			}

			return ethcommon.LeftPadBytes(new(big.Int).Mul(big.NewInt(150), oneToken).Bytes(), 32), nil
		},
	}

	prices := &fixedPriceCaller{prices: map[string]float64{
		"0x00000000000000000000000000000000000000bb": 2,
	}}

	caller := client.NewWalletCaller(ethClient, prices)
	snapshot, err := caller.Snapshot(
		ctx,
		"0x5B38Da6a701c568545dCfcB03FcB875f56beddC4",
		[]entity.NFTBoostConfig{{ContractAddress: "0x00000000000000000000000000000000000000aa"}},
		[]entity.TokenBoostConfig{{ContractAddress: "0x00000000000000000000000000000000000000bb"}},
	)
	require.NoError(t, err)

	require.Equal(t, "2000000000000000000", snapshot.EthBalance)
	require.Len(t, snapshot.NftHoldings, 1)
	require.EqualValues(t, 3, snapshot.NftHoldings[0].Balance)
	require.Len(t, snapshot.TokenHoldings, 1)
	require.Equal(t, "150000000000000000000", snapshot.TokenHoldings[0].Balance)
	require.InDelta(t, 300, snapshot.TokenHoldings[0].UsdValue, 0.001)
	require.False(t, snapshot.SnapshotAt.IsZero())
}

func Test_walletCaller_Snapshot_NftBalanceOutOfRange(t *testing.T) {
	ctx := testutil.MockContext()

	ethClient := &testutil.MockEthClient{
		BalanceAtFunc: func(ctx context.Context, account ethcommon.Address) (*big.Int, error) {
			return big.NewInt(0), nil
		},
		CallContractFunc: func(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
			// A balanceOf result larger than int64 must be rejected, not
			// truncated into a garbage holding.
			huge := new(big.Int).Lsh(big.NewInt(1), 64)
			return ethcommon.LeftPadBytes(huge.Bytes(), 32), nil
		},
	}

	caller := client.NewWalletCaller(ethClient, &fixedPriceCaller{})
	_, err := caller.Snapshot(
		ctx,
		"0x5B38Da6a701c568545dCfcB03FcB875f56beddC4",
		[]entity.NFTBoostConfig{{ContractAddress: "0x00000000000000000000000000000000000000aa"}},
		nil,
	)
	require.ErrorContains(t, err, "out of range")
}

func Test_walletCaller_Snapshot_RpcFailureCounter(t *testing.T) {
	ctx := testutil.MockContext()

	counter := common.PromCounters[common.RpcFailureTotal].WithLabelValues("balance_at")
	before := promtestutil.ToFloat64(counter)

	ethClient := &testutil.MockEthClient{
		BalanceAtFunc: func(ctx context.Context, account ethcommon.Address) (*big.Int, error) {
			return nil, errors.New("no healthy rpc endpoint")
		},
	}

	caller := client.NewWalletCaller(ethClient, &fixedPriceCaller{})
	_, err := caller.Snapshot(ctx, "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4", nil, nil)
	require.Error(t, err)
	require.Equal(t, before+1, promtestutil.ToFloat64(counter))
}

func Test_walletCaller_Snapshot_InvalidAddress(t *testing.T) {
	ctx := testutil.MockContext()
	caller := client.NewWalletCaller(&testutil.MockEthClient{}, &fixedPriceCaller{})

	_, err := caller.Snapshot(ctx, "not-an-address", nil, nil)
	require.Error(t, err)
}
