package services

import (
	"testing"
	"time"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
)

// seedIncident 直接向台账追加一条报修单（绕过引擎，构造任意状态）
func seedIncident(state *AppState, incident models.Incident) {
	state.Lock()
	state.Incidents = append(state.Incidents, incident)
	state.Unlock()
}

func TestQueryTriageOrder(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	teamID := 1
	done := int64(1000)
	seedIncident(state, models.Incident{ID: 1, BuildingID: "B1", Status: models.IncidentStatusDone, Priority: models.PriorityCritical, Timestamp: 100, CompletedAt: &done})
	seedIncident(state, models.Incident{ID: 2, BuildingID: "B1", Status: models.IncidentStatusInProgress, Priority: models.PriorityLow, Timestamp: 200, AssignedTeamID: &teamID})
	seedIncident(state, models.Incident{ID: 3, BuildingID: "B1", Status: models.IncidentStatusPending, Priority: models.PriorityLow, Timestamp: 300})
	seedIncident(state, models.Incident{ID: 4, BuildingID: "B1", Status: models.IncidentStatusPending, Priority: models.PriorityHigh, Timestamp: 50})

	got := svc.Query(TriageQuery{})
	// 状态权重先行：待处理 > 进行中 > 已完成；同状态内优先级高者在前
	wantOrder := []int{4, 3, 2, 1}
	if len(got) != len(wantOrder) {
		t.Fatalf("应返回 %d 条, 实际 %d", len(wantOrder), len(got))
	}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("第 %d 位应为 #%d, 实际 #%d", i, want, got[i].ID)
		}
	}
}

func TestQueryTimestampTieBreak(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	seedIncident(state, models.Incident{ID: 1, Status: models.IncidentStatusPending, Priority: models.PriorityMedium, Timestamp: 100})
	seedIncident(state, models.Incident{ID: 2, Status: models.IncidentStatusPending, Priority: models.PriorityMedium, Timestamp: 300})
	seedIncident(state, models.Incident{ID: 3, Status: models.IncidentStatusPending, Priority: models.PriorityMedium, Timestamp: 200})

	got := svc.Query(TriageQuery{})
	// 状态、优先级都相同时按提交时间倒序
	wantOrder := []int{2, 3, 1}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("第 %d 位应为 #%d, 实际 #%d", i, want, got[i].ID)
		}
	}
}

func TestQuerySpecificStatusSkipsStatusKey(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	done := int64(1)
	seedIncident(state, models.Incident{ID: 1, Status: models.IncidentStatusDone, Priority: models.PriorityLow, Timestamp: 100, CompletedAt: &done})
	seedIncident(state, models.Incident{ID: 2, Status: models.IncidentStatusDone, Priority: models.PriorityCritical, Timestamp: 50, CompletedAt: &done})
	seedIncident(state, models.Incident{ID: 3, Status: models.IncidentStatusPending, Priority: models.PriorityLow, Timestamp: 200})

	got := svc.Query(TriageQuery{Status: "Done"})
	if len(got) != 2 {
		t.Fatalf("状态筛选应只返回2条, 实际 %d", len(got))
	}
	// 锁定具体状态时直接按优先级排序
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("应按优先级排序 [2 1], 实际 [%d %d]", got[0].ID, got[1].ID)
	}
}

func TestQuerySearchIsCaseInsensitive(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	seedIncident(state, models.Incident{ID: 1, Status: models.IncidentStatusPending, Priority: models.PriorityLow, Description: "Aircon Broken", ReporterName: "ครูสมชาย"})
	seedIncident(state, models.Incident{ID: 2, Status: models.IncidentStatusPending, Priority: models.PriorityLow, Description: "ก๊อกน้ำรั่ว", BuildingName: "อาคาร 1"})

	if got := svc.Query(TriageQuery{Search: "aircon"}); len(got) != 1 || got[0].ID != 1 {
		t.Error("描述关键字应忽略大小写命中")
	}
	if got := svc.Query(TriageQuery{Search: "อาคาร"}); len(got) != 1 || got[0].ID != 2 {
		t.Error("建筑名称应参与关键字匹配")
	}
	if got := svc.Query(TriageQuery{Search: "สมชาย"}); len(got) != 1 || got[0].ID != 1 {
		t.Error("报修人应参与关键字匹配")
	}
	if got := svc.Query(TriageQuery{Search: "ไม่มี"}); len(got) != 0 {
		t.Error("无命中时应返回空集")
	}
}

func TestNotificationCountByRole(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	team1, team2 := 1, 2
	seedIncident(state, models.Incident{ID: 1, Status: models.IncidentStatusPending, Priority: models.PriorityLow})
	seedIncident(state, models.Incident{ID: 2, Status: models.IncidentStatusPending, Priority: models.PriorityLow})
	seedIncident(state, models.Incident{ID: 3, Status: models.IncidentStatusInProgress, Priority: models.PriorityLow, AssignedTeamID: &team1})
	seedIncident(state, models.Incident{ID: 4, Status: models.IncidentStatusDone, Priority: models.PriorityLow, AssignedTeamID: &team2})

	state.Lock()
	state.Users = append(state.Users,
		models.RegisteredUser{Username: "a", Status: models.UserStatusPending},
		models.RegisteredUser{Username: "b", Status: models.UserStatusApproved},
	)
	state.Unlock()

	// 管理员：2条待处理报修 + 1条待审批注册
	if got := svc.NotificationCount(models.AdminSession{Username: "admin_mab"}); got != 3 {
		t.Errorf("管理员角标应为3, 实际 %d", got)
	}
	// 团队1技工：1条在办
	if got := svc.NotificationCount(models.TechnicianSession{Username: "tech_elec", TeamID: 1}); got != 1 {
		t.Errorf("团队1技工角标应为1, 实际 %d", got)
	}
	// 团队2技工：在办归零（其单已完工）
	if got := svc.NotificationCount(models.TechnicianSession{Username: "tech_water", TeamID: 2}); got != 0 {
		t.Errorf("团队2技工角标应为0, 实际 %d", got)
	}
	// 教师不接收角标
	if got := svc.NotificationCount(models.TeacherSession{Username: "kru"}); got != 0 {
		t.Errorf("教师角标应为0, 实际 %d", got)
	}
}

func TestWeeklySummaryWindows(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	// 固定"当前时间"，保证窗口计算可复现
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	dayMillis := func(day time.Time) int64 {
		return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.Local).UnixMilli()
	}
	done := int64(1)

	// 今日两条（一完工一未完工）、三天前一条、八天前一条（应落在窗口外）
	seedIncident(state, models.Incident{ID: 1, Status: models.IncidentStatusPending, Timestamp: dayMillis(now)})
	seedIncident(state, models.Incident{ID: 2, Status: models.IncidentStatusDone, Timestamp: dayMillis(now), CompletedAt: &done})
	seedIncident(state, models.Incident{ID: 3, Status: models.IncidentStatusPending, Timestamp: dayMillis(now.AddDate(0, 0, -3))})
	seedIncident(state, models.Incident{ID: 4, Status: models.IncidentStatusPending, Timestamp: dayMillis(now.AddDate(0, 0, -8))})

	got := svc.WeeklySummary()
	if len(got) != 7 {
		t.Fatalf("周报应覆盖7天, 实际 %d", len(got))
	}

	today := got[6]
	if today.Total != 2 || today.Done != 1 || today.Pending != 1 {
		t.Errorf("今日统计应为 total=2 done=1 pending=1, 实际 %+v", today)
	}
	threeDaysAgo := got[3]
	if threeDaysAgo.Total != 1 {
		t.Errorf("三天前应有1条, 实际 %d", threeDaysAgo.Total)
	}

	// 八天前的报修不应出现在任何窗口
	sum := 0
	for _, day := range got {
		sum += day.Total
	}
	if sum != 3 {
		t.Errorf("七日累计应为3, 实际 %d", sum)
	}

	if today.Label == "" || today.FullDate == "" {
		t.Error("每日统计应带泰文星期与日期标签")
	}
}

func TestPartsSummaryAggregation(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	done := int64(1)
	seedIncident(state, models.Incident{ID: 1, Status: models.IncidentStatusDone, CompletedAt: &done, UsedParts: []models.UsedPart{
		{ID: "p1", Name: "หลอดไฟ LED ยาว", Quantity: 2, Unit: "หลอด"},
		{ID: "p4", Name: "เทปพันสายไฟ", Quantity: 1, Unit: "ม้วน"},
	}})
	seedIncident(state, models.Incident{ID: 2, Status: models.IncidentStatusDone, CompletedAt: &done, UsedParts: []models.UsedPart{
		{ID: "p1", Name: "หลอดไฟ LED ยาว", Quantity: 3, Unit: "หลอด"},
	}})
	// 未完工报修单的耗材不计入
	seedIncident(state, models.Incident{ID: 3, Status: models.IncidentStatusInProgress, UsedParts: []models.UsedPart{
		{ID: "p9", Name: "กลอนประตู", Quantity: 5, Unit: "ชุด"},
	}})

	got := svc.PartsSummary()
	if len(got) != 2 {
		t.Fatalf("应聚合出2种耗材, 实际 %d", len(got))
	}
	if got[0].ID != "p1" || got[0].Quantity != 5 {
		t.Errorf("p1 累计应为5且排在首位, 实际 %+v", got[0])
	}
	if got[1].ID != "p4" || got[1].Quantity != 1 {
		t.Errorf("p4 累计应为1, 实际 %+v", got[1])
	}
}

func TestPartsSummaryTieBreakByID(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	done := int64(1)
	seedIncident(state, models.Incident{ID: 1, Status: models.IncidentStatusDone, CompletedAt: &done, UsedParts: []models.UsedPart{
		{ID: "p5", Name: "ก๊อกน้ำทองเหลือง", Quantity: 2, Unit: "ตัว"},
		{ID: "p3", Name: "สตาร์ทเตอร์", Quantity: 2, Unit: "ตัว"},
	}})

	got := svc.PartsSummary()
	if len(got) != 2 || got[0].ID != "p3" || got[1].ID != "p5" {
		t.Errorf("同量耗材应按ID升序, 实际 %+v", got)
	}
}

func TestBuildingSummaryCountsOpenOnly(t *testing.T) {
	state := newTestState()
	svc := NewTriageService(state)

	done := int64(1)
	seedIncident(state, models.Incident{ID: 1, BuildingID: "B1", Status: models.IncidentStatusPending})
	seedIncident(state, models.Incident{ID: 2, BuildingID: "B1", Status: models.IncidentStatusInProgress})
	seedIncident(state, models.Incident{ID: 3, BuildingID: "B1", Status: models.IncidentStatusDone, CompletedAt: &done})
	seedIncident(state, models.Incident{ID: 4, BuildingID: "B2", Status: models.IncidentStatusPending})

	got := svc.BuildingSummary()
	if len(got) != len(models.Buildings) {
		t.Fatalf("应覆盖全部 %d 栋建筑, 实际 %d", len(models.Buildings), len(got))
	}
	counts := map[string]int{}
	for _, entry := range got {
		counts[entry.BuildingID] = entry.OpenCount
	}
	if counts["B1"] != 2 {
		t.Errorf("B1 未结数应为2, 实际 %d", counts["B1"])
	}
	if counts["B2"] != 1 {
		t.Errorf("B2 未结数应为1, 实际 %d", counts["B2"])
	}
	if counts["B3"] != 0 {
		t.Errorf("B3 未结数应为0, 实际 %d", counts["B3"])
	}
}

func TestTeamJob(t *testing.T) {
	state := newTestState()
	engine := newTestIncidentService(state)
	svc := NewTriageService(state)

	incident, err := engine.Report(ReportInput{BuildingID: "B1", RoomNumber: "101", Description: "งาน", ReporterName: "ครู", Priority: models.PriorityMedium})
	if err != nil {
		t.Fatalf("提交报修失败: %v", err)
	}
	if err := engine.Assign(incident.ID, 1); err != nil {
		t.Fatalf("派单失败: %v", err)
	}

	team, job, err := svc.TeamJob(1)
	if err != nil {
		t.Fatalf("查询团队工单失败: %v", err)
	}
	if team.Status != models.TeamStatusBusy || job == nil || job.ID != incident.ID {
		t.Error("忙碌团队应返回其在办报修单")
	}

	team, job, err = svc.TeamJob(2)
	if err != nil {
		t.Fatalf("查询空闲团队失败: %v", err)
	}
	if team.Status != models.TeamStatusAvailable || job != nil {
		t.Error("空闲团队的在办报修单应为nil")
	}

	if _, _, err := svc.TeamJob(99); err == nil {
		t.Error("未知团队应返回错误")
	}
}
