package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client define o contrato de interface para qualquer serviço de cache que o Repositório possa usar.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss é retornado quando a chave não é encontrada no cache.
var ErrCacheMiss = redis.Nil

// RedisClient é a implementação concreta da interface Client, usando Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient cria o cliente Redis e testa a conexão com PING.
// O cliente é retornado mesmo quando o PING falha: o cache é opcional e os
// repositórios caem para o banco em qualquer erro de cache.
func NewRedisClient(addr string) (Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return &RedisClient{rdb: rdb}, err
	}
	return &RedisClient{rdb: rdb}, nil
}

// Get recupera o valor associado a uma chave.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set define um valor para uma chave com um tempo de expiração.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete remove uma chave do cache.
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close encerra o pool de conexões do Redis.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}

// Noop é usado quando o cache está desligado (REDIS_ADDR vazio): toda leitura é miss.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, error)                   { return "", ErrCacheMiss }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error                          { return nil }
