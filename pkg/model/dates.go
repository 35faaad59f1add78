package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// LayoutDate is the on-disk date format.
	LayoutDate = "2006-01-02"
	// LayoutYearMonth keys MonthRecords.
	LayoutYearMonth = "2006-01"

	// SettingsFile is the global settings document.
	SettingsFile = "settings.json"
	// MandalFile is the global mandala chart document.
	MandalFile = "mandal-art.json"
)

// ErrInvalidDate is wrapped by ParseDate failures.
var ErrInvalidDate = errors.New("model: invalid date")

var (
	yearFilePattern  = regexp.MustCompile(`^(?:.*/)?(\d{4})/(\d{4})\.json$`)
	monthFilePattern = regexp.MustCompile(`^(?:.*/)?(\d{4})/(\d{4})-(\d{2})\.json$`)
	mandalPattern    = regexp.MustCompile(`^(?:.*/)?mandal-art\.json$`)
	settingsPattern  = regexp.MustCompile(`^(?:.*/)?settings\.json$`)
)

// ParseDate parses a "YYYY-MM-DD" date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(LayoutDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return t, nil
}

// FormatDate renders t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(LayoutDate)
}

// YearMonthOf returns the "YYYY-MM" key for a "YYYY-MM-DD" date.
func YearMonthOf(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Format(LayoutYearMonth), nil
}

// MondayOf truncates t to midnight of the Monday of its week.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// YearFile is the identifier of the yearly document.
func YearFile(year int) string {
	return fmt.Sprintf("%04d/%04d.json", year, year)
}

// MonthFile is the identifier of a monthly document; yearMonth is "YYYY-MM".
func MonthFile(yearMonth string) string {
	return fmt.Sprintf("%s/%s.json", yearMonth[:4], yearMonth)
}

// MonthKey builds the "YYYY-MM" key.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// FileKind classifies a document identifier.
type FileKind string

const (
	KindUnknown  FileKind = ""
	KindSettings FileKind = "settings"
	KindYear     FileKind = "year"
	KindMonth    FileKind = "month"
	KindMandal   FileKind = "mandal"
)

// FileInfo is the result of ClassifyFile.
type FileInfo struct {
	Kind      FileKind
	Year      int
	YearMonth string
}

// ClassifyFile pattern-matches a document name (optionally nested inside an
// archive folder) to the slot it belongs to.
func ClassifyFile(name string) FileInfo {
	if m := monthFilePattern.FindStringSubmatch(name); m != nil && m[1] == m[2] {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 {
			return FileInfo{Kind: KindMonth, Year: year, YearMonth: m[2] + "-" + m[3]}
		}
		return FileInfo{}
	}
	if m := yearFilePattern.FindStringSubmatch(name); m != nil && m[1] == m[2] {
		year, _ := strconv.Atoi(m[1])
		return FileInfo{Kind: KindYear, Year: year}
	}
	if mandalPattern.MatchString(name) {
		return FileInfo{Kind: KindMandal}
	}
	if settingsPattern.MatchString(name) {
		return FileInfo{Kind: KindSettings}
	}
	return FileInfo{}
}
