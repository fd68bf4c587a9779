package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Translator TranslatorConfig `mapstructure:"translator"`
	History    HistoryConfig    `mapstructure:"history"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Export     ExportConfig     `mapstructure:"export"`
}

type ClassifierConfig struct {
	ModelDirectory     string   `mapstructure:"model_directory" validate:"required"`
	Architecture       string   `mapstructure:"architecture" validate:"required"`
	Version            int      `mapstructure:"version" validate:"gte=1"`
	Alpha              float64  `mapstructure:"alpha" validate:"gt=0,lte=2"`
	Backends           []string `mapstructure:"backends" validate:"min=1,dive,oneof=gpu cpu"`
	OnnxRuntimeLibrary string   `mapstructure:"onnxruntime_library" validate:"omitempty,file"`
	CUDADeviceID       int      `mapstructure:"cuda_device_id" validate:"gte=0"`
}

type TranslatorConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type HistoryConfig struct {
	Driver    string `mapstructure:"driver" validate:"oneof=file mysql"`
	Directory string `mapstructure:"directory" validate:"required"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts"`
}

type ExportConfig struct {
	OutputDirectory  string `mapstructure:"output_directory"`
	MarkdownTemplate string `mapstructure:"markdown_template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/photolingo")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("classifier.model_directory", "models")
	v.SetDefault("classifier.architecture", "mobilenet")
	v.SetDefault("classifier.version", 2)
	v.SetDefault("classifier.alpha", 1.0)
	v.SetDefault("classifier.backends", []string{"gpu", "cpu"})
	v.SetDefault("classifier.onnxruntime_library", "")
	v.SetDefault("classifier.cuda_device_id", 0)
	v.SetDefault("translator.base_url", "https://grubk-lingvatranslate.vercel.app")
	v.SetDefault("translator.timeout", 15*time.Second)
	v.SetDefault("history.driver", "file")
	v.SetDefault("history.directory", "history")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "photolingo")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("export.output_directory", filepath.Join("outputs", "history"))
	// Template is optional - if not specified, the embedded template is used
	v.SetDefault("export.markdown_template", "")

	// The shared library location differs per machine, so it is read from the environment
	if err := v.BindEnv("classifier.onnxruntime_library", "ONNXRUNTIME_LIB"); err != nil {
		return nil, fmt.Errorf("failed to bind ONNXRUNTIME_LIB environment variable: %w", err)
	}
	if err := v.BindEnv("translator.base_url", "PHOTOLINGO_TRANSLATOR_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind PHOTOLINGO_TRANSLATOR_URL environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
