package config

import "os"

type Config struct {
	Port         string
	MongoURI     string
	DBName       string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
	AppEnv       string
}

func Load() Config {
	cfg := Config{
		Port:         os.Getenv("PORT"),
		MongoURI:     os.Getenv("MONGODB_URI"),
		DBName:       os.Getenv("MONGODB_DATABASE"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		AppEnv:       os.Getenv("APP_ENV"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "aura"
	}
	return cfg
}
