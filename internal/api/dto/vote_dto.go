package dto

// 投票结果动作
const (
	VoteActionAdded   = "added"
	VoteActionChanged = "changed"
	VoteActionRemoved = "removed"
)

// VoteRequest 评论投票请求
type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=like dislike"`
}

// VoteResult 投票结果（含最新计数）
type VoteResult struct {
	Action        string `json:"action"`
	LikesCount    int64  `json:"likes_count"`
	DislikesCount int64  `json:"dislikes_count"`
}
