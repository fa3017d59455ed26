package services

import (
	"encoding/json"
	"errors"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/utils"
)

// ErrCorruptSnapshot 备份文件无法解析，导入整体取消
var ErrCorruptSnapshot = errors.New("备份文件损坏，导入已取消")

// InterfaceSnapshotService 定义快照服务接口
type InterfaceSnapshotService interface {
	Load() error
	Export() models.Snapshot
	Import(raw []byte) error
}

// SnapshotService 负责全量数据的导出、导入与启动加载
type SnapshotService struct {
	State     *AppState
	Persister Persister
}

// NewSnapshotService 创建一个新的快照服务
func NewSnapshotService(state *AppState, persister Persister) InterfaceSnapshotService {
	return &SnapshotService{
		State:     state,
		Persister: persister,
	}
}

// Load 启动时从持久化协作方恢复三个集合。
// 台账与注册用户缺失时为空集；团队编制缺失时为初始种子，
// 存在时与种子做并集补齐（恢复的快照可能缺少后来新增的固定团队）。
func (s *SnapshotService) Load() error {
	if s.Persister == nil {
		return nil
	}

	s.State.Lock()
	defer s.State.Unlock()

	incidents, ok, err := s.Persister.LoadIncidents()
	if err != nil {
		return err
	}
	if ok {
		s.State.Incidents = incidents
	}

	teams, ok, err := s.Persister.LoadTeams()
	if err != nil {
		return err
	}
	if ok {
		s.State.Teams = mergeSeedTeams(teams)
	}

	users, ok, err := s.Persister.LoadUsers()
	if err != nil {
		return err
	}
	if ok {
		s.State.Users = users
	}

	logger.Info("状态加载完成: %d 条报修单, %d 支团队, %d 条注册记录",
		len(s.State.Incidents), len(s.State.Teams), len(s.State.Users))
	return nil
}

// Export 导出全量快照（保持各集合的原有顺序）
func (s *SnapshotService) Export() models.Snapshot {
	s.State.Lock()
	defer s.State.Unlock()

	snapshot := models.Snapshot{
		Timestamp:       utils.NowMillis(),
		Incidents:       make([]models.Incident, len(s.State.Incidents)),
		Teams:           make([]models.Team, len(s.State.Teams)),
		RegisteredUsers: make([]models.RegisteredUser, len(s.State.Users)),
	}
	copy(snapshot.Incidents, s.State.Incidents)
	copy(snapshot.Teams, s.State.Teams)
	copy(snapshot.RegisteredUsers, s.State.Users)
	return snapshot
}

// Import 导入快照：每个集合按是否出现在文档中独立整体替换，
// 缺失的集合保持不动；文档无法解析时不产生任何变更。
func (s *SnapshotService) Import(raw []byte) error {
	var doc struct {
		Timestamp       int64                    `json:"timestamp"`
		Incidents       *[]models.Incident       `json:"incidents"`
		Teams           *[]models.Team           `json:"teams"`
		RegisteredUsers *[]models.RegisteredUser `json:"registeredUsers"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ErrCorruptSnapshot
	}

	s.State.Lock()
	defer s.State.Unlock()

	if doc.Incidents != nil {
		s.State.Incidents = *doc.Incidents
		s.State.PersistIncidents()
	}
	if doc.Teams != nil {
		s.State.Teams = *doc.Teams
		s.State.PersistTeams()
	}
	if doc.RegisteredUsers != nil {
		s.State.Users = *doc.RegisteredUsers
		s.State.PersistUsers()
	}

	logger.Info("快照导入完成")
	return nil
}

// mergeSeedTeams 将初始种子中缺失的团队补进恢复的编制
func mergeSeedTeams(restored []models.Team) []models.Team {
	existing := make(map[int]bool, len(restored))
	for _, team := range restored {
		existing[team.ID] = true
	}
	for _, seed := range models.InitialTeams() {
		if !existing[seed.ID] {
			restored = append(restored, seed)
		}
	}
	return restored
}
