package models

// Snapshot 全量数据快照，用于备份、恢复与启动加载
//
// 顶层字段与既有备份文件格式一致；三个集合各自整体替换，
// 导入时缺失的字段对应的集合保持不动。
type Snapshot struct {
	Timestamp       int64            `json:"timestamp"`
	Incidents       []Incident       `json:"incidents"`
	Teams           []Team           `json:"teams"`
	RegisteredUsers []RegisteredUser `json:"registeredUsers"`
}
