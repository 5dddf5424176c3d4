package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"

	"github.com/ishanichuri/portfolio/config"
	"github.com/ishanichuri/portfolio/internal/projects/repository"
)

// Store is the project repository picked by DATA_BACKEND, with its cache
// when Redis is configured.
type Store struct {
	Repo  repository.Repository
	Cache *repository.CachedRepository
	close []func()
}

func (s *Store) Close() {
	for i := len(s.close) - 1; i >= 0; i-- {
		s.close[i]()
	}
}

// LoadAWS resolves credentials and region the standard SDK way.
func LoadAWS(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func OpenStore(ctx context.Context, cfg *config.Config, awsCfg func() (aws.Config, error), rdb *redis.Client) (*Store, error) {
	s := &Store{}

	switch cfg.Data.Backend {
	case config.BackendMemory:
		s.Repo = repository.NewMemoryRepository()
	case config.BackendPostgres:
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.Data.DSN})
		if err != nil {
			return nil, err
		}
		s.close = append(s.close, pool.Close)
		pg := repository.NewPostgresRepository(pool)
		if err := pg.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		s.Repo = pg
	case config.BackendDynamoDB:
		ac, err := awsCfg()
		if err != nil {
			return nil, err
		}
		s.Repo = repository.NewDynamoRepository(dynamodb.NewFromConfig(ac), cfg.Data.TableName)
	default:
		return nil, fmt.Errorf("unknown DATA_BACKEND %q", cfg.Data.Backend)
	}

	if rdb != nil {
		s.Cache = repository.NewCachedRepository(s.Repo, rdb, cfg.Redis.CacheTTL)
		s.Repo = s.Cache
	}
	return s, nil
}
