package utils

import (
	"fmt"
	"time"
)

// 泰文星期缩写
var thaiWeekdays = map[time.Weekday]string{
	time.Sunday:    "อา.",
	time.Monday:    "จ.",
	time.Tuesday:   "อ.",
	time.Wednesday: "พ.",
	time.Thursday:  "พฤ.",
	time.Friday:    "ศ.",
	time.Saturday:  "ส.",
}

// 泰文月份缩写
var thaiMonths = map[time.Month]string{
	time.January:   "ม.ค.",
	time.February:  "ก.พ.",
	time.March:     "มี.ค.",
	time.April:     "เม.ย.",
	time.May:       "พ.ค.",
	time.June:      "มิ.ย.",
	time.July:      "ก.ค.",
	time.August:    "ส.ค.",
	time.September: "ก.ย.",
	time.October:   "ต.ค.",
	time.November:  "พ.ย.",
	time.December:  "ธ.ค.",
}

// ThaiWeekday 返回泰文星期缩写，如 "จ."
func ThaiWeekday(t time.Time) string {
	return thaiWeekdays[t.Weekday()]
}

// ThaiDayMonth 返回泰文"日 月"格式，如 "5 ส.ค."
func ThaiDayMonth(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), thaiMonths[t.Month()])
}

// NowMillis 返回当前Unix毫秒时间戳（与既有备份格式一致）
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// DayWindow 返回t所在本地日历日的毫秒时间窗 [00:00:00.000, 23:59:59.999]
func DayWindow(t time.Time) (int64, int64) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start.UnixMilli(), end.UnixMilli()
}
