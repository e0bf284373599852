package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
)

// Redis stores values in a Redis instance and propagates key-change
// notifications between processes over pub/sub. Delivery carries no ordering
// guarantee; subscribers must re-read the key.
type Redis struct {
	client  *goRedis.Client
	prefix  string
	channel string
	origin  string

	notifyCh chan string
	cancel   context.CancelFunc
}

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	URL      string
	Password string
	DB       int
	Prefix   string
}

// OpenRedis creates the client, performs a health check and starts the
// change-notification subscriber.
func OpenRedis(opts RedisOptions) (*Redis, error) {
	parsed, err := goRedis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.Password != "" {
		parsed.Password = opts.Password
	}
	if opts.DB != 0 {
		parsed.DB = opts.DB
	}

	client := goRedis.NewClient(parsed)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "studytrack:"
	}

	subCtx, stop := context.WithCancel(context.Background())
	r := &Redis{
		client:   client,
		prefix:   prefix,
		channel:  prefix + "changes",
		origin:   uuid.NewString(),
		notifyCh: make(chan string, 16),
		cancel:   stop,
	}
	go r.listen(subCtx)
	return r, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err == goRedis.Nil {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return err
	}
	// Best effort: a lost notification only delays other processes until
	// their next read.
	_ = r.client.Publish(ctx, r.channel, r.origin+" "+key).Err()
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return err
	}
	_ = r.client.Publish(ctx, r.channel, r.origin+" "+key).Err()
	return nil
}

// Notifications yields keys changed by other processes.
func (r *Redis) Notifications() <-chan string {
	return r.notifyCh
}

func (r *Redis) Close() error {
	r.cancel()
	return r.client.Close()
}

func (r *Redis) listen(ctx context.Context) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()
	defer close(r.notifyCh)

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			return
		}
		origin, key, ok := splitMessage(msg.Payload)
		if !ok || origin == r.origin {
			continue
		}
		select {
		case r.notifyCh <- key:
		default:
			// Subscriber is slow; drop rather than block the listener.
		}
	}
}

func (r *Redis) key(name string) string {
	return fmt.Sprintf("%s%s", r.prefix, name)
}

func splitMessage(payload string) (origin, key string, ok bool) {
	for i := 0; i < len(payload); i++ {
		if payload[i] == ' ' {
			return payload[:i], payload[i+1:], true
		}
	}
	return "", "", false
}
