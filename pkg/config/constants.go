package config

const (
	EnvPrefix = "WAREHOUSEPOS"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "WAREHOUSEPOS_APP_ENV"

	EnvDBDSN  = "WAREHOUSEPOS_DB_DSN"
	EnvDBHost = "WAREHOUSEPOS_DB_HOST"
	EnvDBUser = "WAREHOUSEPOS_DB_USER"
	EnvDBName = "WAREHOUSEPOS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
