package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gowtham404/bookstore-auth-go/authapi"
	"github.com/gowtham404/bookstore-auth-go/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "http://localhost:8000"

// Config is the client configuration as read from bookauth.yaml. A missing
// file is not an error; every field has a usable default.
type Config struct {
	API           authapi.Config `yaml:"api" validate:"required"`
	SessionFile   string         `yaml:"session_file"`
	WatchInterval time.Duration  `yaml:"watch_interval"`
}

func LoadConfigFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// expand environment variables $
	expanded := os.ExpandEnv(string(content))

	cfg := new(Config)
	err = yaml.Unmarshal([]byte(expanded), cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("yaml")
	})

	err = validate.Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// loadConfig reads the config file named by --config-file when it exists and
// falls back to environment variables and defaults otherwise.
func loadConfig() (*Config, error) {
	path := viper.GetString("config_file")

	cfg := new(Config)
	if _, err := os.Stat(path); err == nil {
		cfg, err = LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat config file %q: %w", path, err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = viper.GetString("base_url")
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.SessionFile == "" {
		sessionFile, err := session.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		cfg.SessionFile = sessionFile
	}
	if cfg.WatchInterval == 0 {
		cfg.WatchInterval = session.DefaultWatchInterval
	}
	return cfg, nil
}

// newManager wires the client, the file store and the manager from the
// loaded configuration.
func newManager() (*session.Manager, *authapi.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := authapi.NewClient(cfg.API)
	if err != nil {
		return nil, nil, err
	}

	manager, err := session.NewManager(client, session.NewFileStore(cfg.SessionFile))
	if err != nil {
		return nil, nil, err
	}
	return manager, client, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the loaded configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Config file: %s\n", viper.GetString("config_file"))
		config, err := loadConfig()
		if err != nil {
			slog.Error(fmt.Sprintf("load config file %q", viper.GetString("config_file")), "error", err)
			return
		}
		yaml.NewEncoder(cmd.OutOrStdout()).Encode(config)
	},
}
