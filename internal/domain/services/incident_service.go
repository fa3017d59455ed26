package services

import (
	"errors"
	"strings"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/utils"
)

// 派单引擎错误，控制器据此映射错误码
var (
	ErrIncidentNotFound      = errors.New("报修单不存在")
	ErrTeamNotFound          = errors.New("维修团队不存在")
	ErrIncidentNotPending    = errors.New("报修单已被处理，无法派单")
	ErrTeamBusy              = errors.New("维修团队忙碌中，无法接单")
	ErrIncidentNotInProgress = errors.New("只有进行中的报修单才能加急")
	ErrInvalidReport         = errors.New("报修信息不完整")
)

// ReportInput 报修提交的显式输入结构，入库前逐项校验
type ReportInput struct {
	BuildingID   string
	RoomNumber   string
	Description  string
	ReporterName string
	Priority     models.Priority
	ImageURL     string
}

// InterfaceIncidentService 定义派单引擎接口
//
// 报修单与团队状态的全部写入都经过这里；查询投影见 TriageService。
type InterfaceIncidentService interface {
	Report(input ReportInput) (*models.Incident, error)
	GetAll() []models.Incident
	GetByID(id int) (*models.Incident, error)
	Assign(incidentID, teamID int) error
	Complete(incidentID int, note string, usedParts []models.UsedPart) error
	Rush(incidentID int) error
	Delete(incidentID int) error
	Reset() error
}

// IncidentService 提供报修单生命周期与派单服务
type IncidentService struct {
	State  *AppState
	Config *config.Config
	Events InterfaceEventService
}

// NewIncidentService 创建一个新的派单引擎服务
func NewIncidentService(state *AppState, cfg *config.Config, events InterfaceEventService) InterfaceIncidentService {
	return &IncidentService{
		State:  state,
		Config: cfg,
		Events: events,
	}
}

// Report 受理一条新报修：校验输入，生成单号，入账为待处理
func (s *IncidentService) Report(input ReportInput) (*models.Incident, error) {
	building, ok := models.FindBuilding(input.BuildingID)
	if !ok {
		return nil, ErrInvalidReport
	}
	if strings.TrimSpace(input.Description) == "" || strings.TrimSpace(input.ReporterName) == "" {
		return nil, ErrInvalidReport
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidReport
	}

	s.State.Lock()
	defer s.State.Unlock()

	incident := models.Incident{
		ID:             s.State.NextIncidentID(),
		BuildingID:     building.ID,
		BuildingName:   building.Name,
		RoomNumber:     input.RoomNumber,
		Description:    input.Description,
		ReporterName:   input.ReporterName,
		Status:         models.IncidentStatusPending,
		Priority:       input.Priority,
		AssignedTeamID: nil,
		Timestamp:      utils.NowMillis(),
		ImageURL:       input.ImageURL,
	}

	// 新报修单插到台账头部（与既有快照的排列习惯一致）
	s.State.Incidents = append([]models.Incident{incident}, s.State.Incidents...)
	s.State.PersistIncidents()

	logger.Info("新报修单 #%d: %s / %s", incident.ID, incident.BuildingName, incident.Description)
	return &incident, nil
}

// GetAll 返回全部报修单的副本
func (s *IncidentService) GetAll() []models.Incident {
	s.State.Lock()
	defer s.State.Unlock()

	out := make([]models.Incident, len(s.State.Incidents))
	copy(out, s.State.Incidents)
	return out
}

// GetByID 按ID返回报修单副本
func (s *IncidentService) GetByID(id int) (*models.Incident, error) {
	s.State.Lock()
	defer s.State.Unlock()

	incident := s.State.FindIncident(id)
	if incident == nil {
		return nil, ErrIncidentNotFound
	}
	out := *incident
	return &out, nil
}

// Assign 派单：待处理的报修单 + 空闲团队，两侧状态在同一临界区内一起改变。
// 任一前置条件不满足时不产生任何变更。
func (s *IncidentService) Assign(incidentID, teamID int) error {
	s.State.Lock()
	defer s.State.Unlock()

	incident := s.State.FindIncident(incidentID)
	if incident == nil {
		return ErrIncidentNotFound
	}
	team := s.State.FindTeam(teamID)
	if team == nil {
		return ErrTeamNotFound
	}
	if incident.Status != models.IncidentStatusPending {
		return ErrIncidentNotPending
	}
	if team.Status != models.TeamStatusAvailable {
		return ErrTeamBusy
	}

	// 存值的副本：台账删除会原地移动切片元素，指向元素字段的指针会错位
	assignedIncidentID := incident.ID
	assignedTeamID := team.ID
	team.Status = models.TeamStatusBusy
	team.CurrentIncidentID = &assignedIncidentID
	incident.Status = models.IncidentStatusInProgress
	incident.AssignedTeamID = &assignedTeamID

	s.State.PersistIncidents()
	s.State.PersistTeams()

	s.publishEvent(JobEventAssigned, incident.ID, team.ID)
	logger.Info("报修单 #%d 已派给团队 #%d", incidentID, teamID)
	return nil
}

// Complete 完工：写入完工记录并释放团队。
// 未派单的报修单也允许完工（管理员直接结单），此时只改动报修单。
func (s *IncidentService) Complete(incidentID int, note string, usedParts []models.UsedPart) error {
	for _, part := range usedParts {
		if part.Quantity < 1 {
			return ErrInvalidReport
		}
	}

	s.State.Lock()
	defer s.State.Unlock()

	incident := s.State.FindIncident(incidentID)
	if incident == nil {
		return ErrIncidentNotFound
	}

	// 重复完工只覆盖完工记录，不再触碰团队（团队可能已接了新单）
	wasDone := incident.Status == models.IncidentStatusDone

	now := utils.NowMillis()
	incident.Status = models.IncidentStatusDone
	incident.CompletedAt = &now
	incident.CompletionNote = note
	incident.UsedParts = usedParts
	incident.IsRushed = false

	teamID := 0
	if !wasDone && incident.AssignedTeamID != nil {
		if team := s.State.FindTeam(*incident.AssignedTeamID); team != nil {
			team.Status = models.TeamStatusAvailable
			team.CurrentIncidentID = nil
			teamID = team.ID
		}
	}

	s.State.PersistIncidents()
	if teamID != 0 {
		s.State.PersistTeams()
	}

	s.publishEvent(JobEventCompleted, incidentID, teamID)
	logger.Info("报修单 #%d 已完工", incidentID)
	return nil
}

// Rush 加急：仅进行中的报修单可加急，重复加急为幂等空操作
func (s *IncidentService) Rush(incidentID int) error {
	s.State.Lock()
	defer s.State.Unlock()

	incident := s.State.FindIncident(incidentID)
	if incident == nil {
		return ErrIncidentNotFound
	}
	if incident.Status != models.IncidentStatusInProgress {
		return ErrIncidentNotInProgress
	}
	if incident.IsRushed {
		return nil
	}

	incident.IsRushed = true
	s.State.PersistIncidents()

	teamID := 0
	if incident.AssignedTeamID != nil {
		teamID = *incident.AssignedTeamID
	}
	s.publishEvent(JobEventRushed, incidentID, teamID)
	return nil
}

// Delete 删除报修单（管理员操作，不可恢复）。
// 若已派单则先释放团队，再从台账移除。
func (s *IncidentService) Delete(incidentID int) error {
	s.State.Lock()
	defer s.State.Unlock()

	index := -1
	for i := range s.State.Incidents {
		if s.State.Incidents[i].ID == incidentID {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrIncidentNotFound
	}

	incident := s.State.Incidents[index]
	if incident.AssignedTeamID != nil {
		if team := s.State.FindTeam(*incident.AssignedTeamID); team != nil {
			team.Status = models.TeamStatusAvailable
			team.CurrentIncidentID = nil
		}
	}

	s.State.Incidents = append(s.State.Incidents[:index], s.State.Incidents[index+1:]...)

	s.State.PersistIncidents()
	if incident.AssignedTeamID != nil {
		s.State.PersistTeams()
	}

	logger.Info("报修单 #%d 已删除", incidentID)
	return nil
}

// Reset 系统重置：清空台账与注册用户，团队编制回到初始种子。
// 不可恢复。
func (s *IncidentService) Reset() error {
	s.State.Lock()
	defer s.State.Unlock()

	s.State.Incidents = []models.Incident{}
	s.State.Teams = models.InitialTeams()
	s.State.Users = []models.RegisteredUser{}

	s.State.PersistIncidents()
	s.State.PersistTeams()
	s.State.PersistUsers()

	logger.Warning("系统已重置：台账清空，团队编制重新播种")
	return nil
}

// publishEvent 异步推送工单事件，尽力而为，失败只记录日志
func (s *IncidentService) publishEvent(eventType string, incidentID, teamID int) {
	if s.Events == nil {
		return
	}
	event := JobEvent{
		Type:       eventType,
		IncidentID: incidentID,
		TeamID:     teamID,
		Timestamp:  utils.NowMillis(),
	}
	go func() {
		if err := s.Events.PublishJobEvent(event); err != nil {
			logger.Warning("工单事件推送失败 (%s #%d): %v", eventType, incidentID, err)
		}
	}()
}
