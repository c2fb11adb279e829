package cache

import (
	"context"
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedis_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisFromClient(db, "test:")

	fetchedAt := time.Unix(1700000000, 0)
	mock.ExpectHGetAll("test:batch_public_key").SetVal(map[string]string{
		"key":       base64.StdEncoding.EncodeToString([]byte("pem-key")),
		"fetchedAt": strconv.FormatInt(fetchedAt.Unix(), 10),
	})

	key, gotAt, ok, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(key) != "pem-key" {
		t.Errorf("Expected 'pem-key', got %q", key)
	}
	if !gotAt.Equal(fetchedAt) {
		t.Errorf("Expected fetchedAt %v, got %v", fetchedAt, gotAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisFromClient(db, "test:")

	mock.ExpectHGetAll("test:batch_public_key").SetVal(map[string]string{})

	_, _, ok, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected cache miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisFromClient(db, "test:")

	fetchedAt := time.Unix(1700000000, 0)
	mock.ExpectHSet("test:batch_public_key",
		"key", base64.StdEncoding.EncodeToString([]byte("pem-key")),
		"fetchedAt", fetchedAt.Unix(),
	).SetVal(2)

	if err := cache.Set(context.Background(), []byte("pem-key"), fetchedAt); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_DefaultPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisFromClient(db, "")

	mock.ExpectHGetAll("gommt:batch_public_key").SetVal(map[string]string{})

	_, _, ok, err := cache.Get(context.Background())
	if err != nil || ok {
		t.Errorf("Expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisFromClient(db, "test:")

	mock.ExpectPing().SetVal("PONG")

	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}
