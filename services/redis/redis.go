package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redis_models "Ironsights/models/redis"
	"Ironsights/services/game"
	redis_utils "Ironsights/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveLobbySnapshot mirrors the redacted server list into Redis.
// Key: "lobby:servers", TTL: 24 hours.
func (rc *RedisClient) SaveLobbySnapshot(rooms []game.RoomSummary) error {
	snapshots := make([]redis_models.LobbySnapshot, 0, len(rooms))
	for _, room := range rooms {
		players := make([]redis_models.PlayerSnapshot, 0, len(room.Players))
		for _, p := range room.Players {
			players = append(players, redis_models.PlayerSnapshot{
				ID:     p.ID,
				Name:   p.Name,
				Team:   string(p.Team),
				Kills:  p.Kills,
				Deaths: p.Deaths,
			})
		}
		snapshots = append(snapshots, redis_models.LobbySnapshot{
			ID:        room.ID,
			Name:      room.Name,
			Capacity:  room.Capacity,
			Occupancy: room.Occupancy,
			Players:   players,
		})
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("error marshaling lobby snapshot: %v", err)
	}
	return rc.client.Set(rc.ctx, redis_utils.FormatLobbySnapshotKey(), data, 24*time.Hour).Err()
}

// GetLobbySnapshot retrieves the mirrored server list.
func (rc *RedisClient) GetLobbySnapshot() ([]redis_models.LobbySnapshot, error) {
	data, err := rc.client.Get(rc.ctx, redis_utils.FormatLobbySnapshotKey()).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting lobby snapshot: %v", err)
	}

	var snapshots []redis_models.LobbySnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("error unmarshaling lobby snapshot: %v", err)
	}
	return snapshots, nil
}

// SavePlayerPresence stores one connection's presence record.
// Key format: "presence:{connectionId}", TTL: 24 hours.
func (rc *RedisClient) SavePlayerPresence(connectionID, displayName string, serverID uint64) error {
	status := redis_models.StatusOnline
	if serverID != 0 {
		status = redis_models.StatusInGame
	}
	presence := redis_models.PlayerPresence{
		ConnectionID: connectionID,
		DisplayName:  displayName,
		Status:       status,
		ServerID:     serverID,
		LastSeen:     time.Now().Unix(),
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}
	return rc.client.Set(rc.ctx, redis_utils.FormatPresenceKey(connectionID), data, 24*time.Hour).Err()
}

// GetPlayerPresence retrieves one connection's presence record.
func (rc *RedisClient) GetPlayerPresence(connectionID string) (*redis_models.PlayerPresence, error) {
	data, err := rc.client.Get(rc.ctx, redis_utils.FormatPresenceKey(connectionID)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting presence data: %v", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// DeletePlayerPresence removes a connection's presence record.
func (rc *RedisClient) DeletePlayerPresence(connectionID string) error {
	if err := rc.client.Del(rc.ctx, redis_utils.FormatPresenceKey(connectionID)).Err(); err != nil {
		return fmt.Errorf("error deleting presence data: %v", err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
