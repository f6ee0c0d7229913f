package models

// RawDraw is a partially normalized draw entry as produced by a source
// adapter. Issue may still be in the short 5/6-digit form, Week may be empty
// (the normalizer derives it from Date), Date is "YYYY-MM-DD".
type RawDraw struct {
	Issue string
	Date  string
	Week  string
	Red   []int
	Blue  []int
}

// DrawRecord is one canonical draw result as kept in the store. Issue is the
// 7-digit "YYYYNNN" form, Red is ascending with no duplicates. Immutable once
// stored. The JSON shape matches the on-disk store files.
type DrawRecord struct {
	Issue string `json:"issue"`
	Date  string `json:"date"`
	Week  string `json:"week"`
	Red   []int  `json:"red"`
	Blue  []int  `json:"blue"`
}

// Deadline is the sale cutoff of the next draw.
type Deadline struct {
	Weekday    string `json:"weekday"`
	CutoffHour int    `json:"cutoffHour"`
}

// ScheduleInfo answers "what issue is next and when does betting close".
// Always derived from the latest stored record and the current clock,
// never persisted.
type ScheduleInfo struct {
	NextIssue string   `json:"nextIssue"`
	Deadline  Deadline `json:"deadline"`
}

// Pick is one generated ball selection.
type Pick struct {
	Red  []int `json:"red"`
	Blue []int `json:"blue"`
}
