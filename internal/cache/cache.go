// Package cache holds the optional read-through cache for product list pages.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"
)

const ProductListPrefix = "products:list:"

type Cache interface {
	// Get decodes the cached value into dest and reports whether the key existed.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Key builds a stable key from prefix and the JSON form of params.
func Key(prefix string, params interface{}) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", prefix, md5.Sum(data)), nil
}

// Nop is used when no cache is configured. Every lookup misses.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Nop) DeletePrefix(context.Context, string) error { return nil }
