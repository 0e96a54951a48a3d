package calendar

// krHolidayList seeds the KOR calendar with recurring KRX non-settlement
// dates; callers needing full coverage should call RegisterHolidays(KR, ...)
// with a complete feed at startup.
var krHolidayList = []string{
	"2024-01-01", "2024-02-09", "2024-02-12", "2024-03-01", "2024-05-06",
	"2024-05-15", "2024-06-06", "2024-08-15", "2024-09-16", "2024-09-17",
	"2024-09-18", "2024-10-03", "2024-10-09", "2024-12-25",
	"2025-01-01", "2025-01-27", "2025-01-28", "2025-01-29", "2025-01-30",
	"2025-03-03", "2025-05-05", "2025-05-06", "2025-06-06", "2025-08-15",
	"2025-10-03", "2025-10-06", "2025-10-07", "2025-10-08", "2025-10-09",
	"2025-12-25",
}
