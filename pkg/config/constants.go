package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "storefront"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Local store backend names accepted by STOREFRONT_LOCALSTORE_BACKEND.
const (
	LocalStoreMemory = "memory"
	LocalStoreSQLite = "sqlite"
	LocalStoreRedis  = "redis"
)
