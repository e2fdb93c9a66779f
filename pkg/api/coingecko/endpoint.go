package coingecko

import (
	"context"
	"errors"
	"strings"

	"github.com/hungercard/backend/pkg/api"
)

type Endpoint struct {
	apiGenerator api.Generator
}

func New() *Endpoint {
	return &Endpoint{
		apiGenerator: api.NewGenerator("https://api.coingecko.com/api/v3"),
	}
}

func (e *Endpoint) GetTokenPriceUSD(ctx context.Context, contractAddress string) (float64, error) {
	contractAddress = strings.ToLower(contractAddress)
	resp, err := e.apiGenerator.New("/simple/token_price/ethereum").
		Query(api.Parameter{
			"contract_addresses": contractAddress,
			"vs_currencies":      "usd",
		}).
		GET(ctx)
	if err != nil {
		return 0, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return 0, errors.New("invalid price oracle response")
	}

	// An unknown contract comes back as an empty object, not an error.
	if _, err := body.Get(contractAddress); err != nil {
		return 0, nil
	}

	return body.GetFloat(contractAddress + ".usd")
}
