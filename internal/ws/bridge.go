package ws

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/encoding/json"
)

const bridgeChannel = "session-events"

// envelope wraps a broadcast for the wire between instances. Origin lets an
// instance skip messages it published itself.
type envelope struct {
	Origin    string          `json:"origin"`
	SessionID uint            `json:"session_id"`
	Payload   json.RawMessage `json:"payload"`
}

// Bridge relays hub broadcasts between server instances over redis pub/sub,
// so observers connected to different instances see the same events. When no
// redis address is configured the bridge is nil and the hub stays in-process.
type Bridge struct {
	rdb    *redis.Client
	hub    *Hub
	id     string
	cancel context.CancelFunc
}

// NewBridge connects to redis and attaches the relay to the hub. Returns nil
// (in-process broadcasting only) if addr is empty or the connection fails.
func NewBridge(hub *Hub, addr, password string) *Bridge {
	if addr == "" {
		log.Println("redis: no address configured, ws bridge disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, ws bridge disabled: %v", err)
		return nil
	}

	b := &Bridge{
		rdb: rdb,
		hub: hub,
		id:  uuid.NewString(),
	}
	hub.SetBridge(b)
	log.Println("redis: connected, ws bridge enabled")
	return b
}

// Start subscribes to the shared channel and feeds peer broadcasts into the
// local hub until Stop is called.
func (b *Bridge) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	sub := b.rdb.Subscribe(ctx, bridgeChannel)
	go func() {
		defer sub.Close()
		for msg := range sub.Channel() {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("redis: bad envelope: %v", err)
				continue
			}
			if env.Origin == b.id {
				continue
			}
			b.hub.deliver(env.SessionID, env.Payload)
		}
	}()
}

func (b *Bridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.rdb.Close()
}

// Publish sends a broadcast to peer instances.
func (b *Bridge) Publish(sessionID uint, data []byte) {
	env := envelope{
		Origin:    b.id,
		SessionID: sessionID,
		Payload:   data,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		log.Printf("redis: marshal error: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := b.rdb.Publish(ctx, bridgeChannel, payload).Err(); err != nil {
		log.Printf("redis: publish error: %v", err)
	}
}
