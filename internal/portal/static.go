package portal

// seedNotices is the notice board shown until the first successful
// scrape of the news site.
var seedNotices = []Notice{
	{Title: "2025年12月19日至21日部分课程调整的通知", Day: "10", YearMonth: "2025-12", Department: "教务处"},
	{Title: "2025年12月19日至21日部分课程调整的通知", Day: "10", YearMonth: "2025-12", Department: "研究生院"},
	{Title: "2025年东华大学本科生优秀班导师名单公示", Day: "03", YearMonth: "2025-12", Department: "学生处（研究生）工作部"},
	{Title: "关于开展2025年度下半年延安路校区无偿献血活...", Day: "17", YearMonth: "2025-11", Department: "后勤服务中心"},
	{Title: "高性能纤维及制品教育部重点实验室 开放课题申...", Day: "05", YearMonth: "2025-11", Department: "材料科学与工程学院"},
	{Title: "第十六届“东华杯”电子商务“创新、创意、创...", Day: "05", YearMonth: "2025-12", Department: "教务处"},
	{Title: "2025年东华大学优秀博士生国际访学项目选拨结...", Day: "05", YearMonth: "2025-12", Department: "研究生院"},
	{Title: "关于推荐2025年东华大学比亚迪奖教金候选人的...", Day: "25", YearMonth: "2025-11", Department: "学生处（研究生）工作部"},
	{Title: "后勤服务中心2024年度安全文明先进集体及先进...", Day: "09", YearMonth: "2025-10", Department: "后勤服务中心"},
	{Title: "国家新材料现代产业学院拔尖人才实验班2025年...", Day: "09", YearMonth: "2025-10", Department: "材料科学与工程学院"},
}

// calendarDays is the calendar widget grid. Static display data, like
// the rest of the dashboard chrome.
var calendarDays = []CalendarDay{
	{Day: 30, CurrentMonth: false, Lunar: "十一"},
	{Day: 1, CurrentMonth: true, Lunar: "十二"},
	{Day: 2, CurrentMonth: true, Lunar: "十三"},
	{Day: 3, CurrentMonth: true, Lunar: "十四"},
	{Day: 4, CurrentMonth: true, Lunar: "下午节"},
	{Day: 5, CurrentMonth: true, Lunar: "十六"},
	{Day: 6, CurrentMonth: true, Lunar: "十七"},
	{Day: 7, CurrentMonth: true, Lunar: "十八"},
	{Day: 8, CurrentMonth: true, Lunar: "十九"},
	{Day: 9, CurrentMonth: true, Lunar: "二十"},
	{Day: 10, CurrentMonth: true, Today: true, Lunar: "廿一"},
	{Day: 11, CurrentMonth: true, Lunar: "廿二"},
	{Day: 12, CurrentMonth: true, Lunar: "廿三"},
	{Day: 13, CurrentMonth: true, Lunar: "廿四"},
	{Day: 14, CurrentMonth: true, Lunar: "廿五"},
	{Day: 15, CurrentMonth: true, Lunar: "廿六"},
	{Day: 16, CurrentMonth: true, Lunar: "廿七"},
	{Day: 17, CurrentMonth: true, Lunar: "廿八"},
	{Day: 18, CurrentMonth: true, Lunar: "廿九"},
	{Day: 19, CurrentMonth: true, Lunar: "三十"},
	{Day: 20, CurrentMonth: true, Lunar: "初一"},
	{Day: 21, CurrentMonth: true, Lunar: "初二"},
	{Day: 22, CurrentMonth: true, Lunar: "初三"},
	{Day: 23, CurrentMonth: true, Lunar: "初四"},
	{Day: 24, CurrentMonth: true, Lunar: "平安夜"},
	{Day: 25, CurrentMonth: true, Lunar: "圣诞节"},
	{Day: 26, CurrentMonth: true, Lunar: "初七"},
	{Day: 27, CurrentMonth: true, Lunar: "初八"},
	{Day: 28, CurrentMonth: true, Lunar: "初九"},
	{Day: 29, CurrentMonth: true, Lunar: "初十"},
	{Day: 30, CurrentMonth: true, Lunar: "十一"},
	{Day: 31, CurrentMonth: true, Lunar: "十二"},
	{Day: 1, CurrentMonth: false, Lunar: "元旦节", Holiday: true, HolidayName: "休"},
	{Day: 2, CurrentMonth: false, Lunar: "十四", Holiday: true, HolidayName: "休"},
	{Day: 3, CurrentMonth: false, Lunar: "十五", Holiday: true, HolidayName: "休"},
}

// apps are the app-favorites shortcuts. The 校园助手 entry opens the
// conversational widget instead of navigating away.
var apps = []App{
	{ID: "1", Name: "财务服务平台", Icon: "circle-dollar-sign"},
	{ID: "2", Name: "低维设备仪器预约平台", Icon: "flask-conical"},
	{ID: "3", Name: "学工系统", Icon: "graduation-cap"},
	{ID: "4", Name: "研究生系统", Icon: "flower-2"},
	{ID: "5", Name: "协同云", Icon: "cloud"},
	{ID: "new-6", Name: "校园助手", Icon: "bot", Agent: true},
	{ID: "6", Name: "个人账户管理", Icon: "id-card"},
	{ID: "7", Name: "研究生选课考试", Icon: "calendar-check"},
	{ID: "8", Name: "档案投递", Icon: "archive"},
	{ID: "9", Name: "研究生网站", Icon: "globe"},
	{ID: "10", Name: "实验物资采购", Icon: "beaker"},
}

// services are the recommended-services entries.
var services = []Service{
	{ID: "1", Name: "上海市“一网通办”平台验证", Visits: 636, Icon: "file-check"},
	{ID: "2", Name: "资产系统", Visits: 494363, Icon: "server"},
	{ID: "3", Name: "教务系统", Visits: 10332460, Icon: "crosshair"},
	{ID: "4", Name: "科研系统", Visits: 142540, Icon: "monitor-play"},
	{ID: "5", Name: "企业微信绑定", Visits: 20790, Icon: "user-check"},
	{ID: "6", Name: "实验室智能管理", Visits: 30811, Icon: "flask-conical"},
	{ID: "agent", Name: "校园预约", Visits: 8888, Icon: "bot", Agent: true},
}

// Calendar returns the calendar widget grid.
func Calendar() []CalendarDay {
	out := make([]CalendarDay, len(calendarDays))
	copy(out, calendarDays)
	return out
}

// Apps returns the app-favorites shortcuts.
func Apps() []App {
	out := make([]App, len(apps))
	copy(out, apps)
	return out
}

// Services returns the recommended-services entries.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}
