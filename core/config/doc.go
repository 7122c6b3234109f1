// Package config assembles the application configuration.
//
// Configuration is split into partial configs owned by the packages they
// describe (server, logger, database, notify). Defaults are declared as
// struct tags and registered with Viper via reflection, then overridden by
// environment variables (dots map to underscores: server.port becomes
// SERVER_PORT). A .env file, when present, is loaded first via godotenv.
package config
