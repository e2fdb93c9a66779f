package common

import "fmt"

func RedisKeyTokenPrice(contractAddress string) string {
	return fmt.Sprintf("tokenprice:%s", contractAddress)
}
