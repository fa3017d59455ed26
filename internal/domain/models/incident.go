package models

// IncidentStatus 报修单生命周期状态
type IncidentStatus string

const (
	IncidentStatusPending    IncidentStatus = "Pending"
	IncidentStatusInProgress IncidentStatus = "In Progress"
	IncidentStatusDone       IncidentStatus = "Done"
)

// Priority 报修单优先级
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// statusWeight 状态排序权重：待处理 > 进行中 > 已完成
var statusWeight = map[IncidentStatus]int{
	IncidentStatusPending:    2,
	IncidentStatusInProgress: 1,
	IncidentStatusDone:       0,
}

// priorityWeight 优先级排序权重：紧急 > 高 > 中 > 低
var priorityWeight = map[Priority]int{
	PriorityCritical: 3,
	PriorityHigh:     2,
	PriorityMedium:   1,
	PriorityLow:      0,
}

// Weight 返回状态的排序权重
func (s IncidentStatus) Weight() int {
	return statusWeight[s]
}

// Valid 判断状态取值是否合法
func (s IncidentStatus) Valid() bool {
	_, ok := statusWeight[s]
	return ok
}

// Weight 返回优先级的排序权重
func (p Priority) Weight() int {
	return priorityWeight[p]
}

// Valid 判断优先级取值是否合法
func (p Priority) Valid() bool {
	_, ok := priorityWeight[p]
	return ok
}

// UsedPart 完工时登记的耗材记录
type UsedPart struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// Incident 表示一条报修单记录
//
// 字段的JSON键名与既有备份文件格式保持一致（camelCase、毫秒时间戳），
// 保证旧系统导出的快照可以直接导入。
type Incident struct {
	ID             int            `json:"id"`
	BuildingID     string         `json:"buildingId"`
	BuildingName   string         `json:"buildingName"`
	RoomNumber     string         `json:"roomNumber"`
	Description    string         `json:"description"`
	ReporterName   string         `json:"reporterName"`
	Status         IncidentStatus `json:"status"`
	Priority       Priority       `json:"priority"`
	AssignedTeamID *int           `json:"assignedTeamId"`
	Timestamp      int64          `json:"timestamp"`
	CompletedAt    *int64         `json:"completedAt,omitempty"`
	CompletionNote string         `json:"completionNote,omitempty"`
	UsedParts      []UsedPart     `json:"usedParts,omitempty"`
	IsRushed       bool           `json:"isRushed,omitempty"`
	ImageURL       string         `json:"imageUrl,omitempty"`
}
