package models

// Building 表示校内的一栋建筑/区域
type Building struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Buildings 校内建筑固定清单
var Buildings = []Building{
	{ID: "B1", Name: "อาคารเรียน ป.1-2"},
	{ID: "B2", Name: "อาคารเรียน ป.4-5"},
	{ID: "B3", Name: "อาคารเรียน ป.3 และ 6"},
	{ID: "B4", Name: "อาคารสำนักงาน"},
	{ID: "B5", Name: "อาคารเก็บของ"},
	{ID: "B6", Name: "สนามกีฬาโรงเรียนและศาลาเฉลิมพระเกียรติ"},
	{ID: "B7", Name: "อาคารอนุบาลใหม่"},
	{ID: "B8", Name: "อาคารอนุบาล"},
	{ID: "B9", Name: "อาคารศิลปวัฒนธรรม"},
	{ID: "B10", Name: "ห้องสมุดโรงเรียน"},
	{ID: "B11", Name: "หอประชุม"},
	{ID: "B12", Name: "ห้องคอมพิวเตอร์"},
	{ID: "B13", Name: "โรงอาหาร 1"},
	{ID: "B14", Name: "โรงอาหาร 2"},
	{ID: "B15", Name: "ห้องพยาบาล"},
	{ID: "B16", Name: "แฟลตบ้านพักครู"},
	{ID: "B17", Name: "บ้านพักครู (ระบุบ้านเลขที่)"},
	{ID: "B18", Name: "ห้องน้ำอาคาร ป.4-5"},
	{ID: "B19", Name: "ห้องน้ำอาคาร ป.1-2"},
	{ID: "B20", Name: "ห้องน้ำอาคารสำนักงาน"},
	{ID: "B21", Name: "ห้องน้ำอาคารอักษราอำมฤต"},
}

// FindBuilding 根据ID查找建筑
func FindBuilding(id string) (*Building, bool) {
	for i := range Buildings {
		if Buildings[i].ID == id {
			return &Buildings[i], true
		}
	}
	return nil, false
}
