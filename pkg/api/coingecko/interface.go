package coingecko

import "context"

type IEndpoint interface {
	// GetTokenPriceUSD returns the USD price of one unit of the ERC-20 token
	// deployed at contractAddress, or 0 if the oracle does not know it.
	GetTokenPriceUSD(ctx context.Context, contractAddress string) (float64, error)
}
