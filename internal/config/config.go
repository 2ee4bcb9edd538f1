package config

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/sainath-666/storefront/internal/log"
)

type Application struct {
	Env     string `mapstructure:"env"      json:"env"`
	LogFile string `mapstructure:"log_file" json:"log_file"`
}

type Api struct {
	BaseUrl  string `mapstructure:"base_url"  json:"base_url"  validate:"required,url"`
	PageSize int    `mapstructure:"page_size" json:"page_size" validate:"gt=0"`
}

type Session struct {
	Path string `mapstructure:"path" json:"path"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Config struct {
	Api         `mapstructure:"api"         json:"api"`
	Session     `mapstructure:"session"     json:"session"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
}

var (
	once   sync.Once
	config *Config
)

func InitConfig(c context.Context, filename string) *Config {
	cfg := Config{}
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KEY_TAG, "main InitConfig").
			Str(log.KEY_PROCESS, "init config").
			Str("filename", filename).
			Logger()

		viper.SetConfigName(filename)
		viper.AddConfigPath("./env")
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetEnvPrefix("storefront")
		viper.AutomaticEnv()

		viper.SetDefault("application.env", "production")
		viper.SetDefault("application.log_file", "./storefront.log")
		viper.SetDefault("api.base_url", "http://localhost:5000/api")
		viper.SetDefault("api.page_size", 12)
		viper.SetDefault("session.path", "./storefront-session")
		viper.SetDefault("otel.host", "")
		viper.SetDefault("otel.port", 4317)

		logger = logger.With().Str(log.KEY_PROCESS, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := viper.ReadInConfig()
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				err = fmt.Errorf("error when reading config with error=%w", err)
				logger.Fatal().Err(err).Msg(err.Error())
			}
			logger.Info().Msg("config file not found, using defaults")
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(log.KEY_PROCESS, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		err = viper.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("unmarshaled config")

		logger = logger.With().Str(log.KEY_PROCESS, "validating config").Logger()
		logger.Info().Msg("validating config")
		validate := validator.New(validator.WithRequiredStructEnabled())
		err = validate.StructCtx(c, cfg)
		if err != nil {
			err = fmt.Errorf("error validating config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(log.KEY_CONFIG, cfg).Logger()
		logger.Info().Msg("validated config")
	})
	return config
}
