package services

import (
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
)

// memoryPersister 内存持久化协作方，记录每个集合的最新快照与写入次数
type memoryPersister struct {
	incidents *[]models.Incident
	teams     *[]models.Team
	users     *[]models.RegisteredUser

	saveIncidentCalls int
	saveTeamCalls     int
	saveUserCalls     int
}

func (m *memoryPersister) LoadIncidents() ([]models.Incident, bool, error) {
	if m.incidents == nil {
		return nil, false, nil
	}
	return *m.incidents, true, nil
}

func (m *memoryPersister) LoadTeams() ([]models.Team, bool, error) {
	if m.teams == nil {
		return nil, false, nil
	}
	return *m.teams, true, nil
}

func (m *memoryPersister) LoadUsers() ([]models.RegisteredUser, bool, error) {
	if m.users == nil {
		return nil, false, nil
	}
	return *m.users, true, nil
}

func (m *memoryPersister) SaveIncidents(incidents []models.Incident) error {
	out := make([]models.Incident, len(incidents))
	copy(out, incidents)
	m.incidents = &out
	m.saveIncidentCalls++
	return nil
}

func (m *memoryPersister) SaveTeams(teams []models.Team) error {
	out := make([]models.Team, len(teams))
	copy(out, teams)
	m.teams = &out
	m.saveTeamCalls++
	return nil
}

func (m *memoryPersister) SaveUsers(users []models.RegisteredUser) error {
	out := make([]models.RegisteredUser, len(users))
	copy(out, users)
	m.users = &out
	m.saveUserCalls++
	return nil
}

// newTestState 创建不落盘的测试状态
func newTestState() *AppState {
	return NewAppState(nil)
}

// newTestConfig 创建测试配置
func newTestConfig() *config.Config {
	return &config.Config{
		AdminUsername:      "admin_mab",
		AdminPassword:      "mab_admin2024",
		JWTSecretKey:       "test-secret",
		ResetConfirmPhrase: "RESET",
	}
}

// newTestIncidentService 创建不推送事件的派单引擎
func newTestIncidentService(state *AppState) InterfaceIncidentService {
	return NewIncidentService(state, newTestConfig(), nil)
}
