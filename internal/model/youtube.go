package model

// ========== YouTube Data API v3 响应结构（GET /playlistItems?part=snippet） ==========

// YouTubePlaylistResponse playlistItems 的根响应
type YouTubePlaylistResponse struct {
	Items []YouTubePlaylistItem `json:"items"`
}

// YouTubePlaylistItem 单条播放列表条目
type YouTubePlaylistItem struct {
	Snippet YouTubeSnippet `json:"snippet"`
}

// YouTubeSnippet 条目元数据
type YouTubeSnippet struct {
	Title       string            `json:"title"`       // 视频标题
	PublishedAt string            `json:"publishedAt"` // RFC3339
	ResourceID  YouTubeResourceID `json:"resourceId"`
}

// YouTubeResourceID 视频ID载体
type YouTubeResourceID struct {
	VideoID string `json:"videoId"`
}
