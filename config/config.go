package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Eth       EthConfigs
	Pinata    PinataConfigs
	Storage   S3Configs
	Card      CardConfigs
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	DefaultLimit int
	MaxLimit     int

	AllowedOrigins []string
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string

	LogLevel string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr          string
	ApprovedTopic string
}

// EthConfigs is loaded from a TOML file so operators can rotate RPC lists
// without rebuilding.
type EthConfigs struct {
	Chain string   `toml:"chain"`
	Rpcs  []string `toml:"rpcs"`

	// TokenBatchSize caps the concurrent balanceOf/price fan-out per batch
	// when snapshotting a wallet.
	TokenBatchSize int `toml:"token_batch_size"`

	PriceCacheTTL time.Duration `toml:"price_cache_ttl"`
}

type PinataConfigs struct {
	Token   string
	Gateway string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
}

type CardConfigs struct {
	ArchiveBucket string
}
