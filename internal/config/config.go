package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service. Env names
// are kept from the original deployment: FIREBASE_CREDENTIALS, POSTGRES_CONN,
// ALGOD_URL, DEPLOYER_MNEMONIC, ALGORAND_APP_ID, OPENAI_API_KEY, OPENAI_MODEL,
// APP_PORT.
type Config struct {
	AppPort             string
	FirebaseCredentials string
	PostgresConn        string
	AlgodURL            string
	DeployerMnemonic    string
	AlgorandAppId       uint64
	OpenAIAPIKey        string
	OpenAIModel         string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.port", "8080")
	v.SetDefault("algod.url", "https://testnet-api.algonode.cloud")
	v.SetDefault("algorand.app.id", uint64(755776827))
	v.SetDefault("openai.model", "gpt-4o-mini")

	return Config{
		AppPort:             v.GetString("app.port"),
		FirebaseCredentials: v.GetString("firebase.credentials"),
		PostgresConn:        v.GetString("postgres.conn"),
		AlgodURL:            v.GetString("algod.url"),
		DeployerMnemonic:    v.GetString("deployer.mnemonic"),
		AlgorandAppId:       v.GetUint64("algorand.app.id"),
		OpenAIAPIKey:        v.GetString("openai.api.key"),
		OpenAIModel:         v.GetString("openai.model"),
	}
}
