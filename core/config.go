package core

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string
		AppName  string

		SecretKey          string
		JWTExpirationDelta time.Duration
		FrontendBaseURL    string

		// mail backend selection: "console" (default in debug), "smtp", "sendgrid"
		MailBackend    string
		SendgridApiKey string
		RollbarToken   string

		Server   ServerConfig
		Database DatabaseConfig
		Mail     MailConfig
		Admin    AdminConfig
	}

	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	// MailConfig holds the outbound mail-submission endpoint settings.
	MailConfig struct {
		Host        string
		Port        int
		Username    string
		Password    string
		FromName    string
		FromAddress string
		Timeout     time.Duration
	}

	AdminConfig struct {
		Username     string
		PasswordHash string
	}
)

func (c ServerConfig) Addr() string   { return c.Host + ":" + c.Port }
func (c DatabaseConfig) Addr() string { return c.Host + ":" + c.Port }
func (c MailConfig) Addr() string     { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// DefaultFromEmail is the service address used as both the sender and the
// recipient of suggestion emails.
func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.Mail.FromName, Address: c.Mail.FromAddress}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "AIHub")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "9t$ql#+wez)ahx^2u!(7nd&v0m*5c_r$8ybk4fgj1spo6i3e")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("mailBackend", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.debugHost", "0.0.0.0:4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "aihub")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "aihub")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.fromName", "AIHub")
	v.SetDefault("mail.fromAddress", "noreply@localhost")
	v.SetDefault("mail.timeout", 10*time.Second)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.passwordHash", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			panic(fmt.Errorf("config.godotenv(%s): %v", dotEnvPath, err))
		}
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := &Config{
		Debug:              v.GetBool("debug"),
		TestMode:           env == "TEST",
		Env:                env,
		Build:              v.GetString("build"),
		AppName:            v.GetString("appName"),
		SecretKey:          v.GetString("secretKey"),
		JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		FrontendBaseURL:    v.GetString("frontendBaseURL"),
		MailBackend:        v.GetString("mailBackend"),
		SendgridApiKey:     v.GetString("sendgridApiKey"),
		RollbarToken:       v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetString("server.port"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Name:          v.GetString("database.name"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Mail: MailConfig{
			Host:        v.GetString("mail.host"),
			Port:        v.GetInt("mail.port"),
			Username:    v.GetString("mail.username"),
			Password:    v.GetString("mail.password"),
			FromName:    v.GetString("mail.fromName"),
			FromAddress: v.GetString("mail.fromAddress"),
			Timeout:     v.GetDuration("mail.timeout"),
		},
		Admin: AdminConfig{
			Username:     v.GetString("admin.username"),
			PasswordHash: v.GetString("admin.passwordHash"),
		},
	}

	if env == "PROD" {
		conf.Debug = false
		if err := conf.check(); err != nil {
			panic(err)
		}
	}
	return conf
}

// check validates settings that must be provided in production.
func (c *Config) check() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.SecretKey, "secretKey"),
		vala.StringNotEmpty(c.Mail.Host, "mail.host"),
		vala.StringNotEmpty(c.Mail.Username, "mail.username"),
		vala.StringNotEmpty(c.Mail.Password, "mail.password"),
		vala.StringNotEmpty(c.Mail.FromAddress, "mail.fromAddress"),
		vala.StringNotEmpty(c.Admin.PasswordHash, "admin.passwordHash"),
	).Check()
}
