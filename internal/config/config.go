package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	MongoURI    string
	MongoDB     string

	// Ubicación explícita del dataset de publicaciones. El probe también
	// consulta <MongoDB>.publications (donde escribe el CRUD) y, solo con
	// ProbeFallback, escanea el resto de bases buscando colecciones
	// cuyo nombre contenga "publication".
	PubsDB        string
	PubsColl      string
	ProbeFallback bool

	RedisAddr string
	RedisPass string

	JWTSecret        string
	JWTExpireMinutes int

	HTTPPort    string
	Environment string
	Debug       bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=skillstacker port=5432 sslmode=disable"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "skillstacker"),

		PubsDB:        getEnv("MONGO_PUBS_DB", "Publications-data"),
		PubsColl:      getEnv("MONGO_PUBS_COLL", "Publications"),
		ProbeFallback: getEnvBool("MONGO_PROBE_FALLBACK", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASSWORD", ""),

		JWTSecret:        getEnv("JWT_SECRET", "super-secret"),
		JWTExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 30),

		HTTPPort:    getEnv("HTTP_PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvBool("DEBUG", true),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Printf("[config] %s no está seteado, usando valor por defecto\n", key)
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] %s inválido (%q), usando %d\n", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] %s inválido (%q), usando %v\n", key, v, def)
		return def
	}
	return b
}
