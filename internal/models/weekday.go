package models

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// TrackedWeekdays lists the weekdays a person can complete, in streak order.
// Sunday is not tracked.
func TrackedWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

func ParseWeekday(raw string) (Weekday, bool) {
	for _, day := range TrackedWeekdays() {
		if string(day) == raw {
			return day, true
		}
	}
	return "", false
}

type WeeklyProgress struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
}

func (progress WeeklyProgress) Completed(day Weekday) bool {
	switch day {
	case Monday:
		return progress.Monday
	case Tuesday:
		return progress.Tuesday
	case Wednesday:
		return progress.Wednesday
	case Thursday:
		return progress.Thursday
	case Friday:
		return progress.Friday
	case Saturday:
		return progress.Saturday
	default:
		return false
	}
}

// Set marks day as completed or not. Unknown days are ignored.
func (progress *WeeklyProgress) Set(day Weekday, completed bool) {
	switch day {
	case Monday:
		progress.Monday = completed
	case Tuesday:
		progress.Tuesday = completed
	case Wednesday:
		progress.Wednesday = completed
	case Thursday:
		progress.Thursday = completed
	case Friday:
		progress.Friday = completed
	case Saturday:
		progress.Saturday = completed
	}
}
