package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
)

// Redis键名：三个集合快照沿用原系统localStorage的键名
const (
	KeyIncidents = "school_incidents"
	KeyTeams     = "school_teams"
	KeyUsers     = "school_registered_users"

	// 会话键前缀，登出时删除
	keySessionPrefix = "school_session:"

	// 会话有效期与JWT令牌一致
	sessionTTL = 24 * time.Hour
)

// InterfaceRedisService 定义Redis持久化服务接口
type InterfaceRedisService interface {
	Persister
	SaveSession(username string, user models.SessionUser) error
	DeleteSession(username string) error
	Ping() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Ping 测试Redis连接
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 5*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}

// loadBlob 读取一个集合快照；键不存在时返回 ok=false
func (s *RedisService) loadBlob(key string, dest interface{}) (bool, error) {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// saveBlob 整体重写一个集合快照
func (s *RedisService) saveBlob(key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, key, jsonValue, 0).Err()
}

// LoadIncidents 读取报修台账快照
func (s *RedisService) LoadIncidents() ([]models.Incident, bool, error) {
	var incidents []models.Incident
	ok, err := s.loadBlob(KeyIncidents, &incidents)
	return incidents, ok, err
}

// LoadTeams 读取团队编制快照
func (s *RedisService) LoadTeams() ([]models.Team, bool, error) {
	var teams []models.Team
	ok, err := s.loadBlob(KeyTeams, &teams)
	return teams, ok, err
}

// LoadUsers 读取注册用户快照
func (s *RedisService) LoadUsers() ([]models.RegisteredUser, bool, error) {
	var users []models.RegisteredUser
	ok, err := s.loadBlob(KeyUsers, &users)
	return users, ok, err
}

// SaveIncidents 重写报修台账快照
func (s *RedisService) SaveIncidents(incidents []models.Incident) error {
	return s.saveBlob(KeyIncidents, incidents)
}

// SaveTeams 重写团队编制快照
func (s *RedisService) SaveTeams(teams []models.Team) error {
	return s.saveBlob(KeyTeams, teams)
}

// SaveUsers 重写注册用户快照
func (s *RedisService) SaveUsers(users []models.RegisteredUser) error {
	return s.saveBlob(KeyUsers, users)
}

// SaveSession 写入会话记录（短生命周期，独立于集合快照）
func (s *RedisService) SaveSession(username string, user models.SessionUser) error {
	jsonValue, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, keySessionPrefix+username, jsonValue, sessionTTL).Err()
}

// DeleteSession 删除会话记录（登出）
func (s *RedisService) DeleteSession(username string) error {
	return s.Client.Del(s.Ctx, keySessionPrefix+username).Err()
}
