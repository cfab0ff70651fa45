// Package portal serves the dashboard content around the conversational
// widget: the notice board, the calendar widget, app favorites and
// recommended services. Notices refresh from the university news site;
// the rest is static reference data.
package portal

// Notice is one notice-board entry.
type Notice struct {
	Title      string `json:"title"`
	Day        string `json:"day"`
	YearMonth  string `json:"year_month"`
	Department string `json:"department"`
	URL        string `json:"url,omitempty"`
}

// CalendarDay is one cell of the calendar widget grid.
type CalendarDay struct {
	Day          int    `json:"day"`
	CurrentMonth bool   `json:"current_month"`
	Today        bool   `json:"today,omitempty"`
	Lunar        string `json:"lunar"`
	Holiday      bool   `json:"holiday,omitempty"`
	HolidayName  string `json:"holiday_name,omitempty"`
}

// App is one app-favorites shortcut. Icon names match the front-end
// icon set.
type App struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Agent bool   `json:"agent,omitempty"`
}

// Service is one recommended-services entry.
type Service struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Visits int    `json:"visits"`
	Icon   string `json:"icon"`
	Agent  bool   `json:"agent,omitempty"`
}
