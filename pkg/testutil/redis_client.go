package testutil

import (
	"context"
	"time"
)

type MockRedisClient struct {
	ExistFunc         func(ctx context.Context, key string) (bool, error)
	DelFunc           func(ctx context.Context, key ...string) error
	SetObjFunc        func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObjFunc        func(ctx context.Context, key string, v any) error
	SetNXFunc         func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	CompareAndDelFunc func(ctx context.Context, key, value string) (bool, error)
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return nil
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	return true, nil
}

func (m *MockRedisClient) CompareAndDel(ctx context.Context, key, value string) (bool, error) {
	if m.CompareAndDelFunc != nil {
		return m.CompareAndDelFunc(ctx, key, value)
	}

	return true, nil
}
