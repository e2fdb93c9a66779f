package testutil

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/hungercard/backend/pkg/blockchain/eth"
	"github.com/hungercard/backend/pkg/errorx"
)

type MockEthClient struct {
	BlockNumberFunc  func(ctx context.Context) (uint64, error)
	BalanceAtFunc    func(ctx context.Context, account ethcommon.Address) (*big.Int, error)
	CallContractFunc func(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
}

var _ eth.EthClient = (*MockEthClient)(nil)

func (m *MockEthClient) Start(ctx context.Context) {}

func (m *MockEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	if m.BlockNumberFunc != nil {
		return m.BlockNumberFunc(ctx)
	}

	return 0, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockEthClient) BalanceAt(ctx context.Context, account ethcommon.Address) (*big.Int, error) {
	if m.BalanceAtFunc != nil {
		return m.BalanceAtFunc(ctx, account)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockEthClient) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	if m.CallContractFunc != nil {
		return m.CallContractFunc(ctx, msg)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}
