package services

import (
	"sync"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
)

// Persister 持久化协作方：三个集合各对应一个键值快照，
// 每次变更后整体重写对应集合。
type Persister interface {
	LoadIncidents() ([]models.Incident, bool, error)
	LoadTeams() ([]models.Team, bool, error)
	LoadUsers() ([]models.RegisteredUser, bool, error)
	SaveIncidents(incidents []models.Incident) error
	SaveTeams(teams []models.Team) error
	SaveUsers(users []models.RegisteredUser) error
}

// AppState 聚合引擎的全部可变状态：报修台账、团队编制、注册用户。
//
// 所有写操作都必须经过持有 mu 的服务方法，保证每次状态变更
// （例如派单同时改动报修单和团队）作为一个不可分割的整体生效。
type AppState struct {
	mu        sync.Mutex
	Incidents []models.Incident
	Teams     []models.Team
	Users     []models.RegisteredUser

	persister Persister
}

// NewAppState 创建应用状态容器
func NewAppState(persister Persister) *AppState {
	return &AppState{
		Incidents: []models.Incident{},
		Teams:     models.InitialTeams(),
		Users:     []models.RegisteredUser{},
		persister: persister,
	}
}

// Lock 获取状态锁
func (s *AppState) Lock() {
	s.mu.Lock()
}

// Unlock 释放状态锁
func (s *AppState) Unlock() {
	s.mu.Unlock()
}

// NextIncidentID 计算下一个报修单ID：现有最大ID+1，台账为空时为1。
// 调用方必须已持有状态锁。
func (s *AppState) NextIncidentID() int {
	maxID := 0
	for i := range s.Incidents {
		if s.Incidents[i].ID > maxID {
			maxID = s.Incidents[i].ID
		}
	}
	return maxID + 1
}

// FindIncident 按ID查找报修单，返回指向台账内记录的指针。
// 调用方必须已持有状态锁。
func (s *AppState) FindIncident(id int) *models.Incident {
	for i := range s.Incidents {
		if s.Incidents[i].ID == id {
			return &s.Incidents[i]
		}
	}
	return nil
}

// FindTeam 按ID查找团队，返回指向编制内记录的指针。
// 调用方必须已持有状态锁。
func (s *AppState) FindTeam(id int) *models.Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// PersistIncidents 重写报修台账快照。持久化失败只记录日志，
// 不回滚已生效的内存变更（协作方故障按可恢复故障处理）。
func (s *AppState) PersistIncidents() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveIncidents(s.Incidents); err != nil {
		logger.Warning("报修台账持久化失败: %v", err)
	}
}

// PersistTeams 重写团队编制快照
func (s *AppState) PersistTeams() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveTeams(s.Teams); err != nil {
		logger.Warning("团队编制持久化失败: %v", err)
	}
}

// PersistUsers 重写注册用户快照
func (s *AppState) PersistUsers() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveUsers(s.Users); err != nil {
		logger.Warning("注册用户持久化失败: %v", err)
	}
}
