package services

import (
	"sort"
	"strings"
	"time"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/utils"
)

// TriageQuery 报修单列表的筛选条件；空值或"All"表示不过滤
type TriageQuery struct {
	Status   string
	Priority string
	Search   string
}

// DaySummary 单日报修统计（周报）
type DaySummary struct {
	Label    string `json:"label"`
	FullDate string `json:"fullDate"`
	Total    int    `json:"total"`
	Done     int    `json:"done"`
	Pending  int    `json:"pending"`
}

// PartTotal 耗材累计用量
type PartTotal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// BuildingCount 单栋建筑的未结报修数
type BuildingCount struct {
	BuildingID   string `json:"buildingId"`
	BuildingName string `json:"buildingName"`
	OpenCount    int    `json:"openCount"`
}

// InterfaceTriageService 定义查询投影服务接口
//
// 全部为只读派生，不缓存、不改动台账与编制；每次查询重新计算。
type InterfaceTriageService interface {
	Query(q TriageQuery) []models.Incident
	NotificationCount(user models.SessionUser) int
	WeeklySummary() []DaySummary
	PartsSummary() []PartTotal
	BuildingSummary() []BuildingCount
	TeamJob(teamID int) (*models.Team, *models.Incident, error)
	GetTeams() []models.Team
}

// TriageService 提供报修单的筛选、排序与聚合
type TriageService struct {
	State *AppState

	// now 可注入，便于周报窗口的测试
	now func() time.Time
}

// NewTriageService 创建一个新的查询投影服务
func NewTriageService(state *AppState) *TriageService {
	return &TriageService{
		State: state,
		now:   time.Now,
	}
}

// Query 按状态/优先级/关键字筛选后排序返回
//
// 排序是稳定的全序：状态筛选为"All"时先按状态权重
// （待处理 > 进行中 > 已完成），再按优先级权重
// （紧急 > 高 > 中 > 低），最后按提交时间倒序兜底。
// 选定具体状态时跳过状态键，从优先级开始。
func (s *TriageService) Query(q TriageQuery) []models.Incident {
	s.State.Lock()
	filtered := make([]models.Incident, 0, len(s.State.Incidents))
	for _, incident := range s.State.Incidents {
		if matchQuery(incident, q) {
			filtered = append(filtered, incident)
		}
	}
	s.State.Unlock()

	statusAll := q.Status == "" || q.Status == "All"
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if statusAll && a.Status.Weight() != b.Status.Weight() {
			return a.Status.Weight() > b.Status.Weight()
		}
		if a.Priority.Weight() != b.Priority.Weight() {
			return a.Priority.Weight() > b.Priority.Weight()
		}
		return a.Timestamp > b.Timestamp
	})

	return filtered
}

// matchQuery 单条报修单的筛选判定
func matchQuery(incident models.Incident, q TriageQuery) bool {
	if q.Status != "" && q.Status != "All" && string(incident.Status) != q.Status {
		return false
	}
	if q.Priority != "" && q.Priority != "All" && string(incident.Priority) != q.Priority {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		textMatch := strings.Contains(strings.ToLower(incident.Description), needle) ||
			strings.Contains(strings.ToLower(incident.BuildingName), needle) ||
			strings.Contains(strings.ToLower(incident.RoomNumber), needle) ||
			strings.Contains(strings.ToLower(incident.ReporterName), needle)
		if !textMatch {
			return false
		}
	}
	return true
}

// NotificationCount 计算角色相关的待办提醒数
//
// 管理员：待处理报修数 + 待审批注册数；
// 技工：派给本团队且进行中的报修数（按通用口径计算，
// 在"一队一单"不变式下结果只会是0或1）；其他角色为0。
func (s *TriageService) NotificationCount(user models.SessionUser) int {
	s.State.Lock()
	defer s.State.Unlock()

	switch u := user.(type) {
	case models.AdminSession:
		count := 0
		for _, incident := range s.State.Incidents {
			if incident.Status == models.IncidentStatusPending {
				count++
			}
		}
		for _, regUser := range s.State.Users {
			if regUser.Status == models.UserStatusPending {
				count++
			}
		}
		return count
	case models.TechnicianSession:
		count := 0
		for _, incident := range s.State.Incidents {
			if incident.Status == models.IncidentStatusInProgress &&
				incident.AssignedTeamID != nil && *incident.AssignedTeamID == u.TeamID {
				count++
			}
		}
		return count
	default:
		return 0
	}
}

// WeeklySummary 统计最近7个自然日（含今日）的报修量，按完成/未完成拆分
func (s *TriageService) WeeklySummary() []DaySummary {
	s.State.Lock()
	incidents := make([]models.Incident, len(s.State.Incidents))
	copy(incidents, s.State.Incidents)
	s.State.Unlock()

	now := s.now()
	summaries := make([]DaySummary, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart, dayEnd := utils.DayWindow(day)

		done, pending := 0, 0
		for _, incident := range incidents {
			if incident.Timestamp < dayStart || incident.Timestamp > dayEnd {
				continue
			}
			if incident.Status == models.IncidentStatusDone {
				done++
			} else {
				pending++
			}
		}

		summaries = append(summaries, DaySummary{
			Label:    utils.ThaiWeekday(day),
			FullDate: utils.ThaiDayMonth(day),
			Total:    done + pending,
			Done:     done,
			Pending:  pending,
		})
	}
	return summaries
}

// PartsSummary 汇总已完成报修单的耗材用量：按耗材ID累加数量，
// 名称与单位取首次出现的记录，按用量降序（同量按ID升序保证确定性）
func (s *TriageService) PartsSummary() []PartTotal {
	s.State.Lock()
	defer s.State.Unlock()

	totals := map[string]*PartTotal{}
	for _, incident := range s.State.Incidents {
		if incident.Status != models.IncidentStatusDone {
			continue
		}
		for _, part := range incident.UsedParts {
			if existing, ok := totals[part.ID]; ok {
				existing.Quantity += part.Quantity
			} else {
				totals[part.ID] = &PartTotal{
					ID:       part.ID,
					Name:     part.Name,
					Quantity: part.Quantity,
					Unit:     part.Unit,
				}
			}
		}
	}

	out := make([]PartTotal, 0, len(totals))
	for _, total := range totals {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// BuildingSummary 统计每栋建筑的未结报修数（仪表盘分区网格）
func (s *TriageService) BuildingSummary() []BuildingCount {
	s.State.Lock()
	defer s.State.Unlock()

	counts := make([]BuildingCount, 0, len(models.Buildings))
	for _, building := range models.Buildings {
		open := 0
		for _, incident := range s.State.Incidents {
			if incident.BuildingID == building.ID && incident.Status != models.IncidentStatusDone {
				open++
			}
		}
		counts = append(counts, BuildingCount{
			BuildingID:   building.ID,
			BuildingName: building.Name,
			OpenCount:    open,
		})
	}
	return counts
}

// TeamJob 返回团队及其当前正在处理的报修单（无在办任务时报修单为nil）
func (s *TriageService) TeamJob(teamID int) (*models.Team, *models.Incident, error) {
	s.State.Lock()
	defer s.State.Unlock()

	team := s.State.FindTeam(teamID)
	if team == nil {
		return nil, nil, ErrTeamNotFound
	}
	teamCopy := *team
	if team.CurrentIncidentID == nil {
		return &teamCopy, nil, nil
	}
	incident := s.State.FindIncident(*team.CurrentIncidentID)
	if incident == nil {
		return &teamCopy, nil, nil
	}
	incidentCopy := *incident
	return &teamCopy, &incidentCopy, nil
}

// GetTeams 返回团队编制的副本
func (s *TriageService) GetTeams() []models.Team {
	s.State.Lock()
	defer s.State.Unlock()

	out := make([]models.Team, len(s.State.Teams))
	copy(out, s.State.Teams)
	return out
}
