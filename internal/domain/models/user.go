package models

// UserRole 登录用户角色
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTechnician UserRole = "technician"
	RoleTeacher    UserRole = "teacher"
)

// UserStatus 注册账号审批状态
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// RegisteredUser 表示一条教师自助注册记录
//
// Password 保存bcrypt哈希。拒绝后的记录保留用于审计，不会被删除。
type RegisteredUser struct {
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Password    string     `json:"password,omitempty"`
	Email       string     `json:"email,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	GradeLevel  string     `json:"gradeLevel,omitempty"`
	Role        UserRole   `json:"role"`
	Status      UserStatus `json:"status"`
	CreatedAt   int64      `json:"createdAt"`
}

// SessionUser 登录会话用户，按角色分为不同的具体类型，
// 每种类型只携带该角色需要的字段。会话用户不落盘。
type SessionUser interface {
	SessionUsername() string
	DisplayName() string
	SessionRole() UserRole
}

// AdminSession 管理员会话
type AdminSession struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (s AdminSession) SessionUsername() string { return s.Username }
func (s AdminSession) DisplayName() string     { return s.Name }
func (s AdminSession) SessionRole() UserRole   { return RoleAdmin }

// TechnicianSession 技工会话，携带所属团队
type TechnicianSession struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	TeamID   int    `json:"teamId"`
}

func (s TechnicianSession) SessionUsername() string { return s.Username }
func (s TechnicianSession) DisplayName() string     { return s.Name }
func (s TechnicianSession) SessionRole() UserRole   { return RoleTechnician }

// TeacherSession 教师会话，快速报修的访客也归入此类（Guest=true）
type TeacherSession struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	GradeLevel string `json:"gradeLevel,omitempty"`
	Email      string `json:"email,omitempty"`
	Guest      bool   `json:"guest,omitempty"`
}

func (s TeacherSession) SessionUsername() string { return s.Username }
func (s TeacherSession) DisplayName() string     { return s.Name }
func (s TeacherSession) SessionRole() UserRole   { return RoleTeacher }

// TechnicianAccount 固定技工账号表条目
type TechnicianAccount struct {
	Username string
	Password string
	Name     string
	TeamID   int
}

// TechnicianAccounts 固定技工账号表，与团队编制一一对应
var TechnicianAccounts = []TechnicianAccount{
	{Username: "tech_elec", Password: "mab_tech1", Name: "นายช่างสมชาย (ไฟฟ้า)", TeamID: 1},
	{Username: "tech_water", Password: "mab_tech2", Name: "นายช่างสมศักดิ์ (ประปา)", TeamID: 2},
	{Username: "tech_struct", Password: "mab_tech3", Name: "นายช่างสมปอง (โครงสร้าง)", TeamID: 3},
	{Username: "tech_air", Password: "mab_tech4", Name: "นายช่างอำพล (แอร์)", TeamID: 4},
}

// FindTechnician 根据用户名查找固定技工账号
func FindTechnician(username string) (*TechnicianAccount, bool) {
	for i := range TechnicianAccounts {
		if TechnicianAccounts[i].Username == username {
			return &TechnicianAccounts[i], true
		}
	}
	return nil, false
}

// TeacherGradeLevels 教师年级组清单（注册时选择）
var TeacherGradeLevels = []string{
	"สายชั้นอนุบาล 2",
	"สายชั้นอนุบาล 3",
	"สายชั้นประถมศึกษาปีที่ 1",
	"สายชั้นประถมศึกษาปีที่ 2",
	"สายชั้นประถมศึกษาปีที่ 3",
	"สายชั้นประถมศึกษาปีที่ 4",
	"สายชั้นประถมศึกษาปีที่ 5",
	"สายชั้นประถมศึกษาปีที่ 6",
}

// GuestGradeLevel 快速报修访客的年级组标签
const GuestGradeLevel = "แจ้งซ่อมด่วน (Urgent)"
