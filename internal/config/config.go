package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration, assembled from defaults,
// an optional codeloft.yaml, environment variables, and CLI flags, in
// ascending precedence.
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	DBPath     string `mapstructure:"db_path"`

	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	CacheSize int    `mapstructure:"cache_size"`
}

// ChatConfig selects and tunes the generation provider.
type ChatConfig struct {
	Model  string `mapstructure:"model"`
	APIKey string `mapstructure:"api_key"`
}

// RetrievalConfig tunes similarity search.
type RetrievalConfig struct {
	Threshold  float64 `mapstructure:"threshold"`
	MaxResults int     `mapstructure:"max_results"`
}

// Default values.
var defaults = Config{
	ListenAddr: ":8080",
	DBPath:     "codeloft.db",
	Embedding: EmbeddingConfig{
		Provider:  "local",
		CacheSize: 1000,
	},
	Chat: ChatConfig{
		Model: "gpt-4o-mini",
	},
	Retrieval: RetrievalConfig{
		Threshold:  0.3,
		MaxResults: 8,
	},
}

// Load resolves the configuration. A missing config file is not an
// error; defaults plus environment plus flags still apply.
func Load(cmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CODELOFT")
	v.AutomaticEnv()
	bindEnv(v)

	v.SetConfigName("codeloft")
	v.SetConfigType("yaml")
	v.AddConfigPath(cwd)
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if cmd != nil {
		bindFlags(v, cmd)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("embedding.provider", defaults.Embedding.Provider)
	v.SetDefault("embedding.api_key", defaults.Embedding.APIKey)
	v.SetDefault("embedding.cache_size", defaults.Embedding.CacheSize)
	v.SetDefault("chat.model", defaults.Chat.Model)
	v.SetDefault("chat.api_key", defaults.Chat.APIKey)
	v.SetDefault("retrieval.threshold", defaults.Retrieval.Threshold)
	v.SetDefault("retrieval.max_results", defaults.Retrieval.MaxResults)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("listen_addr", "CODELOFT_LISTEN_ADDR")
	_ = v.BindEnv("db_path", "CODELOFT_DB_PATH")
	_ = v.BindEnv("embedding.provider", "CODELOFT_EMBEDDING_PROVIDER")
	_ = v.BindEnv("embedding.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("embedding.cache_size", "CODELOFT_EMBEDDING_CACHE_SIZE")
	_ = v.BindEnv("chat.model", "CODELOFT_CHAT_MODEL")
	_ = v.BindEnv("chat.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("retrieval.threshold", "CODELOFT_RETRIEVAL_THRESHOLD")
	_ = v.BindEnv("retrieval.max_results", "CODELOFT_RETRIEVAL_MAX_RESULTS")
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	_ = v.BindPFlag("listen_addr", cmd.Flags().Lookup("listen"))
	_ = v.BindPFlag("db_path", cmd.Flags().Lookup("db"))
	_ = v.BindPFlag("embedding.provider", cmd.Flags().Lookup("embedding-provider"))
	_ = v.BindPFlag("chat.model", cmd.Flags().Lookup("chat-model"))
	_ = v.BindPFlag("retrieval.threshold", cmd.Flags().Lookup("retrieval-threshold"))
	_ = v.BindPFlag("retrieval.max_results", cmd.Flags().Lookup("retrieval-max"))
}
