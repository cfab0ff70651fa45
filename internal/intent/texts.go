package intent

// Fixed user-facing texts. These are frozen; golden tests assert them
// literally.
const (
	// Greeting seeds every new session.
	Greeting = "你好！我是你的校园活动助手。\n您可以查询体育、会议室、图书馆或心理咨询预约。"

	// BookingEventPrefix marks a synthetic confirmation event produced
	// after the user books an item. Event shape:
	// [SYSTEM_EVENT] User booked {category}: {name} at {time}.
	BookingEventPrefix = "[SYSTEM_EVENT]"

	textFallbackAck    = "我明白您的意思，请查看："
	textResolvedAck    = "为您查询到相关信息："
	textApology        = "抱歉，我只能帮您查询体育、会议、图书馆或心理咨询相关内容。"
	textSystemBusy     = "系统繁忙，请稍后再试。"
	textNoReply        = "暂无回复"
	textCampusQuestion = "请问您想查询哪个校区？"

	textBookedSports  = "预约成功！请按时前往场馆。"
	textBookedGeneric = "您的预约申请已提交，请等待管理员审核。"
)

// titles per service view
const (
	titleMeeting    = "会议室"
	titleClassroom  = "教室"
	titleLibrary    = "图书馆"
	titleCounseling = "心理咨询"
	titleCanteen    = "食堂"
	titleCampusPick = "选择校区"
)

// entityAckFormat announces a matched directory entry link.
const entityAckFormat = "为您找到%s的入口："

// SystemBusyText is the reply the transport layer shows when
// resolution fails with a recoverable error.
func SystemBusyText() string { return textSystemBusy }
