//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"ticketd/internal/audit"
	"ticketd/pkg/testutil/containers"
)

func sampleEvent(kind string, ticketID uint64) audit.Event {
	return audit.Event{
		Timestamp: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
		Kind:      kind,
		Actor:     "0x000000000000000000000000000000000000000a",
		Subject:   "0x000000000000000000000000000000000000000b",
		TicketID:  ticketID,
		Amount:    "0.01",
	}
}

func TestRedisStore(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	store := audit.NewRedisStore(rc.Client)

	require.NoError(t, store.Append(ctx, sampleEvent("ticket_purchased", 1)))
	require.NoError(t, store.Append(ctx, sampleEvent("ticket_transferred", 1)))
	require.NoError(t, store.Append(ctx, sampleEvent("ticket_burned", 1)))

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ticket_burned", events[0].Kind, "newest first")
	assert.Equal(t, "ticket_transferred", events[1].Kind)

	events, err = store.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestPostgresStore(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store := audit.NewPostgresStore(pc.DB)
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx), "schema creation is idempotent")

	require.NoError(t, store.Append(ctx, sampleEvent("ticket_purchased", 7)))
	require.NoError(t, store.Append(ctx, sampleEvent("withdrawn", 0)))

	events, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "withdrawn", events[0].Kind, "newest first")
	assert.Equal(t, uint64(7), events[1].TicketID)
	assert.Equal(t, "0.01", events[1].Amount)
}

func TestKafkaSink(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx := context.Background()

	const topic = "ticketd.audit"
	sink, err := audit.NewKafkaSink([]string{rp.Broker}, topic)
	require.NoError(t, err)
	defer sink.Close()

	want := sampleEvent("ticket_purchased", 42)
	require.NoError(t, sink.Publish(ctx, want))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, want.Kind, string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, want.TicketID, got.TicketID)
	assert.Equal(t, want.Actor, got.Actor)
}
