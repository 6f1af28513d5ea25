package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	Host      string
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	AWSRegion string
	S3Bucket  string
)

// Load reads configuration from the environment, with an optional .env
// file picked up first. Defaults mirror a local development setup.
func Load() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "videohosting")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "video-hosting-media")

	Host = viper.GetString("HOST")
	Port = viper.GetString("PORT")
	MongoURI = viper.GetString("MONGO_URI")
	MongoDB = viper.GetString("MONGO_DB")
	JWTSecret = viper.GetString("JWT_SECRET")
	AWSRegion = viper.GetString("AWS_REGION")
	S3Bucket = viper.GetString("S3_BUCKET")
}
