package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/es"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-mann/pkg/config/env"
	"github.com/DjordjeVuckovic/news-mann/pkg/stringsutil"
)

const defaultESIndex = "articles"

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	// Es is set when newly stored articles should be mirrored to Elasticsearch.
	Es *es.ClientConfig
	// AutoMigrate applies pending migrations on startup.
	AutoMigrate bool
}

func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(env.String("STORAGE_TYPE", string(storage.PG)))
	if storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.PG, storage.InMem})
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr:  os.Getenv("PG_CONNECTION_STRING"),
			MaxConns: int32(env.Int("PG_MAX_CONNS", 0)),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	var esCfg *es.ClientConfig
	if addresses := stringsutil.SplitCSV(os.Getenv("ES_ADDRESSES")); len(addresses) > 0 {
		esCfg = &es.ClientConfig{
			Addresses: addresses,
			IndexName: env.String("ES_INDEX_NAME", defaultESIndex),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
	}

	return &StorageConfig{
		Type:        storageType,
		Pg:          pgCfg,
		Es:          esCfg,
		AutoMigrate: env.Bool("PG_AUTO_MIGRATE"),
	}, nil
}
