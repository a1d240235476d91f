package common

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

type queueItem struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

func TestRedisQueueService_EnqueueDequeueAck(t *testing.T) {
	c := qt.New(t)
	_, client := newMiniRedis(c)
	q := NewRedisQueueService(client)
	ctx := context.Background()

	c.Assert(q.CreateConsumerGroup(ctx, "sms", "workers"), qt.IsNil)
	c.Assert(q.CreateConsumerGroup(ctx, "sms", "workers"), qt.IsNil)

	id, err := q.Enqueue(ctx, "sms", queueItem{To: "0812", Text: "hi"})
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Not(qt.Equals), "")

	msg, err := q.Dequeue(ctx, "sms", "workers", "w1", 10*time.Millisecond)
	c.Assert(err, qt.IsNil)
	c.Assert(msg, qt.IsNotNil)
	c.Assert(msg.ID, qt.Equals, id)

	var item queueItem
	c.Assert(msg.Decode(&item), qt.IsNil)
	c.Assert(item, qt.Equals, queueItem{To: "0812", Text: "hi"})

	pending, err := q.GetPendingCount(ctx, "sms", "workers")
	c.Assert(err, qt.IsNil)
	c.Assert(pending, qt.Equals, int64(1))

	c.Assert(q.Ack(ctx, "sms", "workers", msg.ID), qt.IsNil)
	pending, err = q.GetPendingCount(ctx, "sms", "workers")
	c.Assert(err, qt.IsNil)
	c.Assert(pending, qt.Equals, int64(0))

	empty, err := q.Dequeue(ctx, "sms", "workers", "w1", 10*time.Millisecond)
	c.Assert(err, qt.IsNil)
	c.Assert(empty, qt.IsNil)
}

func TestRedisQueueService_ClaimStale(t *testing.T) {
	c := qt.New(t)
	_, client := newMiniRedis(c)
	q := NewRedisQueueService(client)
	ctx := context.Background()

	c.Assert(q.CreateConsumerGroup(ctx, "sms", "workers"), qt.IsNil)
	_, err := q.Enqueue(ctx, "sms", queueItem{To: "0812"})
	c.Assert(err, qt.IsNil)

	msg, err := q.Dequeue(ctx, "sms", "workers", "dead", 10*time.Millisecond)
	c.Assert(err, qt.IsNil)
	c.Assert(msg, qt.IsNotNil)

	claimed, err := q.ClaimStale(ctx, "sms", "workers", "alive", 0)
	c.Assert(err, qt.IsNil)
	c.Assert(claimed, qt.HasLen, 1)
	c.Assert(claimed[0].ID, qt.Equals, msg.ID)

	length, err := q.GetQueueLength(ctx, "sms")
	c.Assert(err, qt.IsNil)
	c.Assert(length, qt.Equals, int64(1))
}
