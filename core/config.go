package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRemote   = "remote"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	RecordStoreConfig struct {
		BaseURL   string
		ProjectID string
		PublicKey string
		Timeout   time.Duration
	}

	DigestConfig struct {
		Schedule   string // cron spec; empty disables the job
		Recipients []string
		Days       int
	}

	Config struct {
		Env            string
		Build          string
		AppName        string
		Debug          bool
		TestMode       bool
		Store          string
		RollbarToken   string
		SendgridAPIKey string
		Server         ServerConfig
		Database       DatabaseConfig
		RecordStore    RecordStoreConfig
		Digest         DigestConfig

		defaultFromEmail string
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: "noreply@localhost"}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "StudySync")
	conf.SetDefault("store", StoreMemory)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")

	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddress", ":8000")
	conf.SetDefault("serverDebugHost", ":4000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("serverDisableReqLogs", false)

	conf.SetDefault("dbEngine", "postgres")
	conf.SetDefault("dbHost", "localhost")
	conf.SetDefault("dbPort", "5432")
	conf.SetDefault("dbName", "studysync")
	conf.SetDefault("dbUser", "studysync")
	conf.SetDefault("dbPassword", "studysync")
	conf.SetDefault("dbAdminUser", "")
	conf.SetDefault("dbAdminPassword", "")
	conf.SetDefault("dbDisableTls", true)

	conf.SetDefault("recordStoreUrl", "")
	conf.SetDefault("recordStoreProjectId", "")
	conf.SetDefault("recordStorePublicKey", "")
	conf.SetDefault("recordStoreTimeout", 10*time.Second)

	conf.SetDefault("digestSchedule", "")
	conf.SetDefault("digestRecipients", "")
	conf.SetDefault("digestDays", 7)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:            env,
		Build:          conf.GetString("build"),
		AppName:        conf.GetString("appName"),
		Debug:          conf.GetBool("debug"),
		TestMode:       conf.GetBool("testMode"),
		Store:          CleanString(conf.GetString("store"), true),
		RollbarToken:   conf.GetString("rollbarToken"),
		SendgridAPIKey: conf.GetString("sendgridApiKey"),
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Address:         conf.GetString("serverAddress"),
			DebugHost:       conf.GetString("serverDebugHost"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
			DisableReqLogs:  conf.GetBool("serverDisableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("dbEngine"),
			Host:          conf.GetString("dbHost"),
			Port:          conf.GetString("dbPort"),
			Name:          conf.GetString("dbName"),
			User:          conf.GetString("dbUser"),
			Password:      conf.GetString("dbPassword"),
			AdminUser:     conf.GetString("dbAdminUser"),
			AdminPassword: conf.GetString("dbAdminPassword"),
			DisableTLS:    conf.GetBool("dbDisableTls"),
		},
		RecordStore: RecordStoreConfig{
			BaseURL:   strings.TrimSuffix(conf.GetString("recordStoreUrl"), "/"),
			ProjectID: conf.GetString("recordStoreProjectId"),
			PublicKey: conf.GetString("recordStorePublicKey"),
			Timeout:   conf.GetDuration("recordStoreTimeout"),
		},
		Digest: DigestConfig{
			Schedule:   conf.GetString("digestSchedule"),
			Recipients: splitList(conf.GetString("digestRecipients")),
			Days:       conf.GetInt("digestDays"),
		},
		defaultFromEmail: conf.GetString("defaultFromEmail"),
	}
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = CleanString(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
