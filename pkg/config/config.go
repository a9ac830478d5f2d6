package config

import "os"

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDBName     string
	PostgresConnStr string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "aurora_voices"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
