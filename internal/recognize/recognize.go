// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recognize provides entity recognisers that tag clinical spans in
// case narratives: a no-op recogniser, an in-process dictionary gazetteer, a
// client for a remote NER service, and a caching wrapper around any of them.
package recognize

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/casegrade/internal/keywords"
	"github.com/pdiddy/casegrade/pkg/types"
)

// Recognizer tags entity spans in raw text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]types.EntitySpan, error)
}

// Nop recognises nothing. Keyword counts then come from pattern matching
// alone.
type Nop struct{}

// Recognize returns no spans.
func (Nop) Recognize(context.Context, string) ([]types.EntitySpan, error) {
	return nil, nil
}

// New builds the recogniser selected by cfg and wraps it in the cache
// selected by cacheCfg. The dictionary recogniser reads cfg.Dictionary when
// set and otherwise derives its terms from cat.
func New(cfg types.RecognizerConfig, cacheCfg types.CacheConfig, cat *keywords.Catalog) (Recognizer, error) {
	var r Recognizer
	switch cfg.Kind {
	case "", types.RecognizerNone:
		return Nop{}, nil
	case types.RecognizerDictionary:
		if cfg.Dictionary != "" {
			d, err := LoadDictionary(cfg.Dictionary, cfg.MaxCompoundTokens)
			if err != nil {
				return nil, err
			}
			r = d
		} else {
			r = CatalogDictionary(cat, cfg.MaxCompoundTokens)
		}
	case types.RecognizerHTTP:
		h, err := NewHTTP(cfg)
		if err != nil {
			return nil, err
		}
		r = h
	default:
		return nil, fmt.Errorf("unknown recognizer kind %q", cfg.Kind)
	}

	switch cacheCfg.Kind {
	case "", types.CacheNone:
		return r, nil
	case types.CacheLocal:
		return NewCached(r, NewLocalCache()), nil
	case types.CacheRedis:
		if cacheCfg.RedisAddr == "" {
			return nil, fmt.Errorf("cache kind redis requires cache.redis_addr")
		}
		client := redis.NewClient(&redis.Options{Addr: cacheCfg.RedisAddr})
		if err := client.Ping().Err(); err != nil {
			log.Warn().Err(err).Str("addr", cacheCfg.RedisAddr).Msg("redis cache unreachable, lookups will miss")
		}
		return NewCached(r, NewRedisCache(client, cacheCfg.TTL)), nil
	default:
		return nil, fmt.Errorf("unknown cache kind %q", cacheCfg.Kind)
	}
}
