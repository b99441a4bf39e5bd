package config

import "os"

// Config reúne la configuración del proceso. Todo viene de env; no hay
// archivo de configuración.
type Config struct {
	Addr string

	// DSN de escritura. Vacío => repos en memoria (modo dev).
	DBDSN string
	// DSN de solo lectura opcional para el camino read-mostly.
	DBDSNReadOnly string

	LogLevel  string
	LogFormat string
	AppName   string
}

// Load lee env con defaults razonables.
func Load() Config {
	cfg := Config{
		Addr:          ":8080",
		DBDSN:         os.Getenv("DB_DSN"),
		DBDSNReadOnly: os.Getenv("DB_DSN_RO"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		AppName:       os.Getenv("APP_NAME"),
	}
	if cfg.AppName == "" {
		cfg.AppName = "open-baby-backend"
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	return cfg
}
