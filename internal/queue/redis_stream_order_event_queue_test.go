package queue_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"booth-pos-backend/config"
	"booth-pos-backend/internal/database"
	"booth-pos-backend/internal/queue"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRdb *redis.Client

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("setup redis: %v", err)
	}
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}
	testRdb = rdb

	code := m.Run()

	rdb.Close()
	os.Exit(code)
}

func cleanupStream(ctx context.Context, t *testing.T) {
	t.Helper()
	_ = testRdb.Del(ctx, queue.StreamKey).Err()
}

func TestNewRedisStreamOrderEventQueue(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	t.Run("success", func(t *testing.T) {
		q, err := queue.NewRedisStreamOrderEventQueue(testRdb, "test-consumer", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})

	t.Run("empty_consumer_id_generates_uuid", func(t *testing.T) {
		cleanupStream(ctx, t)
		q, err := queue.NewRedisStreamOrderEventQueue(testRdb, "", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})
}

func TestRedisStreamOrderEventQueue_Publish(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamOrderEventQueue(testRdb, "pub-test", nil)
	require.NoError(t, err)

	err = q.Publish(ctx, &queue.OrderEvent{
		Type:    queue.OrderEventCreated,
		OrderID: 1,
		EventID: 2,
	})
	require.NoError(t, err)
}

// 驗證發出去的內容與收進來的內容一致
func TestRedisStreamOrderEventQueue_Subscribe_deliversPublishedMessage(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamOrderEventQueue(testRdb, "deliver-test", nil)
	require.NoError(t, err)

	event := &queue.OrderEvent{
		Type:    queue.OrderEventCancelled,
		OrderID: 10,
		EventID: 3,
	}
	require.NoError(t, q.Publish(ctx, event))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "應收到一筆")
		require.NotNil(t, d.Data)
		assert.Equal(t, event.Type, d.Data.Type)
		assert.Equal(t, event.OrderID, d.Data.OrderID)
		assert.Equal(t, event.EventID, d.Data.EventID)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到訊息")
	}
}

// Ack 後該訊息不應再被投遞
func TestRedisStreamOrderEventQueue_Ack_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamOrderEventQueue(testRdb, "ack-test", cfg)
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, &queue.OrderEvent{
		Type:    queue.OrderEventCreated,
		OrderID: 11,
		EventID: 3,
	}))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	// 短時間內不應再收到同一筆
	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.OrderID == 11 {
			t.Fatal("Ack 後不應再投遞同一筆")
		}
	case <-time.After(1 * time.Second):
	}
	cancel()
}

// Nack(true) 後訊息留在 PEL，約 ClaimMinIdleTime 後重新投遞
func TestRedisStreamOrderEventQueue_NackRequeue_redeliversAfterIdle(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamOrderEventQueue(testRdb, "nack-requeue-test", cfg)
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, &queue.OrderEvent{
		Type:    queue.OrderEventCreated,
		OrderID: 12,
		EventID: 3,
	}))

	subCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	delCh, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		d.Nack(true)
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	// 等待 XAUTOCLAIM 重新投遞
	select {
	case d, ok := <-delCh:
		require.True(t, ok, "Nack(true) 後應重新投遞")
		require.NotNil(t, d.Data)
		assert.Equal(t, 12, d.Data.OrderID)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到重新投遞的訊息")
	}
}
