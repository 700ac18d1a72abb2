package adapter

import "time"

// RetentionWindow 历史保留窗口：已结束超过30天的比赛不再纳入结果，
// 控制结果规模，避免历史无限增长
const RetentionWindow = 30 * 24 * time.Hour
