package gann

import "time"

// momentDef is one entry of a timing table before it is bound to a
// concrete date.
type momentDef struct {
	Angle    string
	Title    string
	Category string
}

// angleTitles are the shared angle meanings reused across timeframes.
var (
	def0   = momentDef{"0°", "NEW CYCLE BEGINS", "cycle"}
	def45  = momentDef{"45°", "ANGLE OF SUPPORT", "support"}
	def90  = momentDef{"90°", "MAJOR PIVOT POINT", "pivot"}
	def135 = momentDef{"135°", "CORRECTION ZONE", "correction"}
	def180 = momentDef{"180°", "OPPOSITION POINT", "pivot"}
	def225 = momentDef{"225°", "SECONDARY PIVOT", "pivot"}
	def270 = momentDef{"270°", "CRITICAL TURN", "turn"}
	def315 = momentDef{"315°", "CYCLE COMPLETION", "cycle"}
)

// dailyTable divides the trading day into eighths (three-hour steps).
var dailyTable = []struct {
	Hour int
	Def  momentDef
}{
	{0, def0},
	{3, def45},
	{6, def90},
	{9, def135},
	{12, def180},
	{15, def225},
	{18, def270},
	{21, def315},
}

// weeklyTable divides the week (anchored on Sunday) into eighths of
// twenty-one hours. Two entries land on Sunday.
var weeklyTable = []struct {
	Weekday time.Weekday
	Hour    int
	Def     momentDef
}{
	{time.Sunday, 0, def0},
	{time.Sunday, 21, def45},
	{time.Monday, 18, def90},
	{time.Tuesday, 15, def135},
	{time.Wednesday, 12, def180},
	{time.Thursday, 9, def225},
	{time.Friday, 6, def270},
	{time.Saturday, 3, def315},
}

// monthlyTables hold one day-of-month pattern per month length.
// Days are the ceiling of each eighth of the month, counted from day 1,
// so the same angle drifts by a day between short and long months.
var monthlyTables = map[int][]struct {
	Day int
	Def momentDef
}{
	28: {
		{1, def0}, {4, def45}, {7, def90}, {11, def135},
		{14, def180}, {18, def225}, {21, def270}, {25, def315},
	},
	29: {
		{1, def0}, {4, def45}, {8, def90}, {11, def135},
		{15, def180}, {19, def225}, {22, def270}, {26, def315},
	},
	30: {
		{1, def0}, {4, def45}, {8, def90}, {12, def135},
		{15, def180}, {19, def225}, {23, def270}, {27, def315},
	},
	31: {
		{1, def0}, {4, def45}, {8, def90}, {12, def135},
		{16, def180}, {20, def225}, {24, def270}, {28, def315},
	},
}

// quarterlyTables hold month/day entries per quarter, eighths of a
// ninety-odd-day span.
var quarterlyTables = map[int][]struct {
	Month time.Month
	Day   int
	Def   momentDef
}{
	1: {
		{time.January, 1, def0}, {time.January, 12, def45},
		{time.January, 23, def90}, {time.February, 3, def135},
		{time.February, 14, def180}, {time.February, 26, def225},
		{time.March, 9, def270}, {time.March, 20, def315},
	},
	2: {
		{time.April, 1, def0}, {time.April, 12, def45},
		{time.April, 23, def90}, {time.May, 4, def135},
		{time.May, 16, def180}, {time.May, 27, def225},
		{time.June, 8, def270}, {time.June, 19, def315},
	},
	3: {
		{time.July, 1, def0}, {time.July, 12, def45},
		{time.July, 24, def90}, {time.August, 4, def135},
		{time.August, 16, def180}, {time.August, 27, def225},
		{time.September, 8, def270}, {time.September, 19, def315},
	},
	4: {
		{time.October, 1, def0}, {time.October, 12, def45},
		{time.October, 24, def90}, {time.November, 4, def135},
		{time.November, 15, def180}, {time.November, 27, def225},
		{time.December, 8, def270}, {time.December, 19, def315},
	},
}

// yearlyTables: eighths of the year from January 1st, one table per
// year length selected by the leap-year test.
var yearlyTables = map[bool][]struct {
	Month time.Month
	Day   int
	Def   momentDef
}{
	false: { // 365 days
		{time.January, 1, def0}, {time.February, 15, def45},
		{time.April, 2, def90}, {time.May, 18, def135},
		{time.July, 2, def180}, {time.August, 17, def225},
		{time.October, 2, def270}, {time.November, 16, def315},
	},
	true: { // 366 days
		{time.January, 1, def0}, {time.February, 15, def45},
		{time.April, 1, def90}, {time.May, 17, def135},
		{time.July, 1, def180}, {time.August, 16, def225},
		{time.October, 1, def270}, {time.November, 15, def315},
	},
}
