package couchbase

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gorm.io/couchbase/logger"
	"gorm.io/couchbase/schema"
)

// LoadConfig read `COUCHBASE_*` settings from `.env.<env>` in paths (the
// working directory by default), environment variables take precedence
func LoadConfig(env string, paths ...string) (*Config, error) {
	if env == "" {
		env = "dev"
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	v := viper.New()
	v.SetConfigName(fmt.Sprintf(".env.%s", env))
	v.SetConfigType("env")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	v.SetDefault("COUCHBASE_BUCKET", DefaultBucket)
	v.SetDefault("COUCHBASE_SCOPE", DefaultScope)
	v.SetDefault("COUCHBASE_LOG_LEVEL", "warn")
	v.SetDefault("COUCHBASE_SINGULAR_TABLE", false)

	level, err := logger.ParseLevel(v.GetString("COUCHBASE_LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("%w: COUCHBASE_LOG_LEVEL: %w", ErrInvalidConfig, err)
	}

	morphMap, err := ParseMorphMap(v.GetString("COUCHBASE_MORPH_MAP"))
	if err != nil {
		return nil, err
	}

	return &Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   v.GetString("COUCHBASE_TABLE_PREFIX"),
			SingularTable: v.GetBool("COUCHBASE_SINGULAR_TABLE"),
		},
		Logger:           logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{LogLevel: level}),
		Bucket:           v.GetString("COUCHBASE_BUCKET"),
		Scope:            v.GetString("COUCHBASE_SCOPE"),
		ConnectionString: v.GetString("COUCHBASE_CONNECTION_STRING"),
		Username:         v.GetString("COUCHBASE_USERNAME"),
		Password:         v.GetString("COUCHBASE_PASSWORD"),
		MorphMap:         morphMap,
		LogLevel:         level,
	}, nil
}

// ParseMorphMap parse morph type aliases, `post=Post,video=Video`
func ParseMorphMap(value string) (map[string]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	morphMap := map[string]string{}
	for _, pair := range strings.Split(value, ",") {
		alias, name, ok := strings.Cut(strings.TrimSpace(pair), "=")
		alias, name = strings.TrimSpace(alias), strings.TrimSpace(name)
		if !ok || alias == "" || name == "" {
			return nil, fmt.Errorf("%w: morph map entry %q", ErrInvalidConfig, pair)
		}
		morphMap[alias] = name
	}
	return morphMap, nil
}
