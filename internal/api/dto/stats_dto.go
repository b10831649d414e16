package dto

// DashboardData 后台仪表盘汇总数据
type DashboardData struct {
	TotalUsers     int64 `json:"total_users"`
	PublishedNews  int64 `json:"published_news"`
	DraftNews      int64 `json:"draft_news"`
	TotalComments  int64 `json:"total_comments"`
	PendingReports int64 `json:"pending_reports"`
}

// RecountResult 对账修复结果
type RecountResult struct {
	Scanned  int64 `json:"scanned"`
	Repaired int64 `json:"repaired"`
}
