package snapdex

import (
	"regexp"
	"strconv"
)

// Sentinel values used when a filename carries no recognizable date.
const (
	UnknownDateText   = "未知时间"
	UnknownDateKey    = "00000000"
	UnknownGroupKey   = "000000"
	UnknownGroupLabel = "未知日期"
)

// datePattern matches a leading YYYY, YYYYMM or YYYYMMDD token with optional
// "-" or "_" separators. Years are limited to 2000-2099.
var datePattern = regexp.MustCompile(`^(20\d{2})(?:[-_]?(\d{2}))?(?:[-_]?(\d{2}))?`)

// DateInfo is the date descriptor parsed from a filename prefix.
type DateInfo struct {
	// Text is the display form: YYYY-MM-DD, YYYY-MM or YYYY depending on
	// how much of the date the filename carried.
	Text string

	// Key is a zero-filled YYYYMMDD token for chronological sorting.
	Key string

	// GroupKey is the YYYYMM month bucket.
	GroupKey string

	// GroupLabel is the month bucket label, e.g. "24年3月".
	GroupLabel string
}

// UnknownDate is the DateInfo substituted when no date can be parsed.
var UnknownDate = DateInfo{
	Text:       UnknownDateText,
	Key:        UnknownDateKey,
	GroupKey:   UnknownGroupKey,
	GroupLabel: UnknownGroupLabel,
}

// ExtractDate parses a date from the start of a filename.
// Missing month and day default to "01" in Key and GroupKey, so a year-only
// name sorts together with an explicit YYYY-01-01 name.
// Month and day are not range checked.
func ExtractDate(name string) (DateInfo, bool) {
	m := datePattern.FindStringSubmatch(name)
	if m == nil {
		return DateInfo{}, false
	}

	year, month, day := m[1], m[2], m[3]
	if month == "" {
		month = "01"
	}
	if day == "" {
		day = "01"
	}

	var text string
	switch {
	case m[3] != "":
		text = year + "-" + month + "-" + day
	case m[2] != "":
		text = year + "-" + month
	default:
		text = year
	}

	return DateInfo{
		Text:       text,
		Key:        year + month + day,
		GroupKey:   year + month,
		GroupLabel: GroupLabel(year, month),
	}, true
}

// DateInfoOrUnknown returns the parsed date for name, or UnknownDate.
func DateInfoOrUnknown(name string) DateInfo {
	if info, ok := ExtractDate(name); ok {
		return info
	}
	return UnknownDate
}

// GroupLabel formats a month bucket label from a four digit year and a two
// digit month: ("2024", "03") becomes "24年3月".
func GroupLabel(year, month string) string {
	yy := year
	if len(yy) > 2 {
		yy = yy[len(yy)-2:]
	}
	mo, err := strconv.Atoi(month)
	if err != nil {
		return yy + "年" + month + "月"
	}
	return yy + "年" + strconv.Itoa(mo) + "月"
}
