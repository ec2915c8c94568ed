package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string   `yaml:"port"`
	DBUsername     string   `yaml:"db_username"`
	DBPassword     string   `yaml:"db_password"`
	DBHost         string   `yaml:"db_host"`
	DBPort         string   `yaml:"db_port"`
	DBName         string   `yaml:"db_name"`
	DisableTLS     bool     `yaml:"disable_tls"`
	DBDebug        bool     `yaml:"db_debug"`
	RedisAddr      string   `yaml:"redis_addr"`
	RedisPassword  string   `yaml:"redis_password"`
	PrivateKeyFile string   `yaml:"private_key_file"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	if c.Port == "" {
		c.Port = ":8080"
	}
	if c.DBPort == "" {
		c.DBPort = "5432"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.PrivateKeyFile == "" {
		c.PrivateKeyFile = "./private.pem"
	}

	return &c, nil
}
