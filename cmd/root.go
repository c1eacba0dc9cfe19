package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/logger"
	"github.com/spigell/hirekit/internal/store"
)

const (
	app = "hirekit"
)

type Config struct {
	Store   *StoreConfig   `mapstructure:"store"`
	Catalog *CatalogConfig `mapstructure:"catalog"`
	Tracker *TrackerConfig `mapstructure:"tracker"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type CatalogConfig struct {
	File string `mapstructure:"file"`
}

type TrackerConfig struct {
	DigestSize        int    `mapstructure:"digest-size"`
	StatusHistorySize int    `mapstructure:"status-history-size"`
	Seed              uint64 `mapstructure:"seed"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hirekit tracks job applications, analyses job descriptions and scores resumes",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("store.path", "HIREKIT_STORE_PATH"); err != nil {
		log.Fatalf("binding HIREKIT_STORE_PATH environment variable: %v", err)
	}

	viper.SetDefault("store.backend", string(store.BackendFile))
	viper.SetDefault("store.path", "./hirekit-data")
	viper.SetDefault("tracker.digest-size", 10)
	viper.SetDefault("tracker.status-history-size", 10)
	viper.SetDefault("tracker.seed", 1)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hirekit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("store", "", "record store backend: file, sqlite or memory")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("store"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default, so only an explicitly given or broken file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// env is what every command needs: the config, a logger, the store and the
// keyword catalog.
type env struct {
	config  *Config
	logger  *zap.Logger
	store   store.RecordStore
	catalog *catalog.Catalog
}

// fatal closes the env, so the store lock is released, and exits through the
// logger.
func (e *env) fatal(msg string, fields ...zap.Field) {
	e.Close()
	e.logger.Fatal(msg, fields...)
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("closing the record store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// setup builds the env or exits.
func setup() *env {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	cat := catalog.Default()
	if config.Catalog != nil && config.Catalog.File != "" {
		cat, err = catalog.LoadFile(config.Catalog.File)
		if err != nil {
			lg.Fatal("loading the keyword catalog", zap.Error(err))
		}
		lg.Debug("keyword catalog loaded", zap.String("file", config.Catalog.File))
	}

	backend := logger.StringFields(
		logger.StringField{Key: logger.FieldBackend, Value: config.Store.Backend},
		logger.StringField{Key: "path", Value: config.Store.Path},
	)
	s, err := store.Open(store.Backend(config.Store.Backend), config.Store.Path)
	if err != nil {
		lg.Fatal("opening the record store", append(backend, zap.Error(err))...)
	}
	lg.Debug("record store opened", backend...)

	return &env{config: config, logger: lg, store: s, catalog: cat}
}
