package notify

import (
	"fmt"
	"strings"
	"time"

	"meeting-manager/feature/booking/models"
)

// Action tags the reservation event a notification describes.
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Message titles shown in the group chat. The recipients read Chinese;
// this is wire format, not log output.
var titleByAction = map[Action]string{
	ActionCreate: "新增会议室预约通知",
	ActionEdit:   "会议室预约修改通知",
	ActionDelete: "会议室预约取消(删除）通知",
}

// buildMessage renders the markdown_v2 body for a reservation event.
func buildMessage(res models.Reservation, action Action) string {
	title, ok := titleByAction[action]
	if !ok {
		title = "会议室预约通知"
	}

	department := res.Department
	if department == "" {
		department = "未填写"
	}

	date := time.Time(res.Date).Format("2006年01月02日")
	timeRange := fmt.Sprintf(`%s \- %s`, res.StartTime, res.EndTime)
	created := strings.ReplaceAll(res.CreatedAt.Local().Format("2006-01-02 15:04:05"), "-", `\-`)

	return fmt.Sprintf(`# 📅 %s

## 📋 会议详情

| **项目** | **内容** |
| :--- | :--- |
| **会议室** | %s |
| **预约日期** | %s |
| **会议时间** | %s |
| **会议主题** | %s |
| **预约人** | %s |
| **预约部门** | %s |

\-\-\-

> 📌 创建时间：%s`,
		title,
		EscapeMarkdownV2(res.Room.Name),
		date,
		timeRange,
		EscapeMarkdownV2(res.Title),
		EscapeMarkdownV2(res.Booker),
		EscapeMarkdownV2(department),
		created)
}
