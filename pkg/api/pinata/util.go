package pinata

import (
	"fmt"
	"strings"
)

func IpfsURL(cid string) string {
	return fmt.Sprintf("ipfs://%s", cid)
}

func GatewayURL(gateway, cid string) string {
	return fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(gateway, "/"), cid)
}
