package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MediaBucketPrefix  string
	ImagesBucketPrefix string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	MediaBucketPrefix = GetEnv("OSS_MEDIA_PREFIX", "media")
	ImagesBucketPrefix = GetEnv("OSS_IMAGES_PREFIX", "images")

	for _, k := range []string{"DB_HOST", "DB_USER", "DB_NAME", "ALI_OSS_BUCKET"} {
		if GetEnv(k) == "" {
			log.Printf("❌ %s is not set!", k)
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
