package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	MongoURI          string
	MongoDBName       string
	ReconcileInterval time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	MongoURI = GetEnv("MONGO_URI", "mongodb://localhost:27017")
	MongoDBName = GetEnv("MONGO_DB_NAME", "edumanage")

	ReconcileInterval = 5 * time.Minute
	if raw := GetEnv("RECONCILE_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			ReconcileInterval = d
		} else {
			log.Println("⚠️ RECONCILE_INTERVAL tidak valid, pakai default 5m:", raw)
		}
	}

	if os.Getenv("MONGO_URI") == "" {
		log.Println("❌ MONGO_URI belum diset, pakai default localhost!")
	} else {
		log.Println("✅ MONGO_URI berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
