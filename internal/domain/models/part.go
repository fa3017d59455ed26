package models

// PartOption 维修耗材目录条目，供技工完工时选用
type PartOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// AvailableParts 维修耗材固定目录
var AvailableParts = []PartOption{
	{ID: "p1", Name: "หลอดไฟ LED ยาว", Unit: "หลอด"},
	{ID: "p2", Name: "หลอดไฟ LED กลม", Unit: "หลอด"},
	{ID: "p3", Name: "สตาร์ทเตอร์", Unit: "ตัว"},
	{ID: "p4", Name: "เทปพันสายไฟ", Unit: "ม้วน"},
	{ID: "p5", Name: "ก๊อกน้ำทองเหลือง", Unit: "ตัว"},
	{ID: "p6", Name: "เทปพันเกลียว", Unit: "ม้วน"},
	{ID: "p7", Name: "ท่อ PVC 1/2 นิ้ว", Unit: "เส้น"},
	{ID: "p8", Name: "ข้อต่อ PVC", Unit: "ตัว"},
	{ID: "p9", Name: "กลอนประตู", Unit: "ชุด"},
	{ID: "p10", Name: "มือจับหน้าต่าง", Unit: "อัน"},
	{ID: "p11", Name: "บานพับประตู", Unit: "ตัว"},
	{ID: "p12", Name: "น้ำมันกันสนิม", Unit: "กระป๋อง"},
	{ID: "p13", Name: "สายยาง", Unit: "เมตร"},
	{ID: "p14", Name: "น้ำยาแอร์ R32", Unit: "ถัง"},
	{ID: "p15", Name: "แคปการัน (Capacitor)", Unit: "ตัว"},
	{ID: "p16", Name: "ฟิลเตอร์แอร์", Unit: "แผ่น"},
}
