package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
)

// 工单事件类型
const (
	JobEventAssigned  = "assigned"
	JobEventRushed    = "rushed"
	JobEventCompleted = "completed"
)

// 主题常量
const (
	// 团队工单主题，%d为团队ID
	TopicTeamJobs = "school_repair/team/%d/jobs"

	// 系统消息主题
	TopicSystemMessage = "school_repair/system"
)

// ErrEventsDisabled 事件推送未启用（未配置Broker或连接失败）
var ErrEventsDisabled = errors.New("MQTT事件推送未启用")

// JobEvent 推送给技工终端的工单事件
type JobEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	IncidentID int    `json:"incident_id"`
	TeamID     int    `json:"team_id"`
	Timestamp  int64  `json:"timestamp"`
}

// InterfaceEventService 定义工单事件推送服务接口
//
// 推送完全独立于引擎状态变更：失败只记录日志，从不回滚。
type InterfaceEventService interface {
	Connect() error
	Disconnect()
	PublishJobEvent(event JobEvent) error
}

// MQTTEventService 通过MQTT向技工终端推送工单事件
type MQTTEventService struct {
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 保护MQTT消息发布
}

// NewMQTTEventService 创建一个新的事件推送服务
func NewMQTTEventService(cfg *config.Config) InterfaceEventService {
	return &MQTTEventService{Config: cfg}
}

// Connect 连接MQTT服务器。未配置Broker时静默停用推送。
func (s *MQTTEventService) Connect() error {
	if s.Config.MQTTBroker == "" {
		logger.Info("未配置MQTT Broker，工单事件推送停用")
		return nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBroker).
		SetClientID(fmt.Sprintf("school-repair-%s", uuid.New().String()[:8])).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		s.setConnected(true)
		logger.Info("MQTT连接成功: %s", s.Config.MQTTBroker)
	})
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		s.setConnected(false)
		logger.Warning("MQTT连接断开: %v", err)
	})

	s.Client = mqtt.NewClient(opts)
	token := s.Client.Connect()
	if !token.WaitTimeout(10*time.Second) || token.Error() != nil {
		return fmt.Errorf("MQTT连接失败: %v", token.Error())
	}
	return nil
}

// Disconnect 断开MQTT连接
func (s *MQTTEventService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
}

// PublishJobEvent 发布工单事件到团队主题与系统主题
func (s *MQTTEventService) PublishJobEvent(event JobEvent) error {
	if !s.connected() {
		return ErrEventsDisabled
	}

	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	if event.TeamID != 0 {
		topic := fmt.Sprintf(TopicTeamJobs, event.TeamID)
		token := s.Client.Publish(topic, 1, false, payload)
		if !token.WaitTimeout(2*time.Second) || token.Error() != nil {
			return fmt.Errorf("发布到 %s 失败: %v", topic, token.Error())
		}
	}

	token := s.Client.Publish(TopicSystemMessage, 0, false, payload)
	if !token.WaitTimeout(2*time.Second) || token.Error() != nil {
		return fmt.Errorf("发布到 %s 失败: %v", TopicSystemMessage, token.Error())
	}
	return nil
}

func (s *MQTTEventService) connected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.IsConnected
}

func (s *MQTTEventService) setConnected(v bool) {
	s.connectedMutex.Lock()
	defer s.connectedMutex.Unlock()
	s.IsConnected = v
}
