package user

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	Timezone       string
	GoogleCalendar GoogleCalendarSettings
}

type GoogleCalendarSettings struct {
	CalendarId string
}
