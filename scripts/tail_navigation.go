//go:build ignore

// Reads navigation events from the discovery stream the way a host router
// would. Usage: go run scripts/tail_navigation.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
)

type navigationEvent struct {
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"`
	PointID   *int64    `json:"point_id,omitempty"`
	At        time.Time `json:"at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", "stream:discovery:navigation", "Navigation stream")
	fromStart := flag.Bool("from-start", false, "Replay the whole stream")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	lastID := "$"
	if *fromStart {
		lastID = "0"
	}
	fmt.Printf("Listening on %s (Ctrl+C to stop)\n", *stream)

	for {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{*stream, lastID},
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if ctx.Err() != nil {
			return
		}
		if err != nil && err != redis.Nil {
			log.Printf("XREAD failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, s := range results {
			for _, msg := range s.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var event navigationEvent
				if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
					log.Printf("Malformed event %s: %v", msg.ID, err)
					continue
				}

				switch event.Type {
				case "select_point":
					if event.PointID == nil {
						continue
					}
					fmt.Printf("%s  session=%s  -> Detail(point_id=%d)\n",
						event.At.Format(time.RFC3339), event.SessionID, *event.PointID)
				default:
					fmt.Printf("%s  session=%s  -> %s\n",
						event.At.Format(time.RFC3339), event.SessionID, event.Type)
				}
			}
		}
	}
}
