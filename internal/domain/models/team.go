package models

// TeamStatus 维修团队状态
type TeamStatus string

const (
	TeamStatusAvailable TeamStatus = "Available"
	TeamStatusBusy      TeamStatus = "Busy"
)

// Team 表示一支固定编制的维修团队
//
// 不变式：Status == Busy 当且仅当 CurrentIncidentID != nil。
// 团队与报修单之间只保存对方的ID（弱引用），避免记录相互内嵌。
type Team struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Status            TeamStatus `json:"status"`
	CurrentIncidentID *int       `json:"currentIncidentId"`
}

// InitialTeams 返回初始团队编制的全新副本
//
// 团队编制固定，只在系统启动和重置时播种；返回副本防止调用方
// 改动共享的种子数据。
func InitialTeams() []Team {
	return []Team{
		{ID: 1, Name: "ทีมช่าง A (ไฟฟ้า)", Status: TeamStatusAvailable, CurrentIncidentID: nil},
		{ID: 2, Name: "ทีมช่าง B (ประปา/ทั่วไป)", Status: TeamStatusAvailable, CurrentIncidentID: nil},
		{ID: 3, Name: "ทีมช่าง C (โครงสร้าง)", Status: TeamStatusAvailable, CurrentIncidentID: nil},
		{ID: 4, Name: "ทีมช่าง D (แอร์/เครื่องปรับอากาศ)", Status: TeamStatusAvailable, CurrentIncidentID: nil},
	}
}
