package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Function selectors are the first four bytes of keccak256 over the method
// signature. balanceOf(address) is shared by ERC-20 and ERC-721.
var (
	selectorBalanceOf = selector("balanceOf(address)")
	selectorDecimals  = selector("decimals()")
)

func selector(signature string) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(signature))
	return hash.Sum(nil)[:4]
}

// BalanceOf calls balanceOf(owner) on the given ERC-20 or ERC-721 contract.
func BalanceOf(ctx context.Context, client EthClient, contract, owner common.Address) (*big.Int, error) {
	data := make([]byte, 0, 36)
	data = append(data, selectorBalanceOf...)
	data = append(data, common.LeftPadBytes(owner.Bytes(), 32)...)

	result, err := client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data})
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("empty balanceOf result from %s", contract.Hex())
	}

	return new(big.Int).SetBytes(result), nil
}

// Decimals calls decimals() on the given ERC-20 contract. Contracts without
// the method are treated as 18-decimal tokens.
func Decimals(ctx context.Context, client EthClient, contract common.Address) (uint8, error) {
	result, err := client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: selectorDecimals})
	if err != nil || len(result) == 0 {
		return 18, nil
	}

	return uint8(new(big.Int).SetBytes(result).Uint64()), nil
}
