package dateparse

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	ref := time.Date(2024, 6, 1, 15, 4, 5, 0, time.Local)

	tests := []struct {
		name    string
		input   string
		title   string
		dueDate string
	}{
		{"no expression", "  보고서 작성  ", "보고서 작성", ""},
		{"today", "오늘 장보기", "장보기", "2024-06-01"},
		{"today synonym", "금일 회의록 정리", "회의록 정리", "2024-06-01"},
		{"month day with particle", "1월 15일까지 발표", "발표", "2024-01-15"},
		{"month day spaced", "발표 준비 7 월 3 일", "발표 준비", "2024-07-03"},
		{"month day overflow normalizes", "2월 30일 마감", "마감", "2024-03-01"},
		{"days later", "3일후 마무리하자", "마무리하자", "2024-06-04"},
		{"days later with space", "청소 10 일 뒤", "청소", "2024-06-11"},
		{"tomorrow", "내일 보고서 제출", "보고서 제출", "2024-06-02"},
		{"day after tomorrow", "모레 병원", "병원", "2024-06-03"},
		{"today beats tomorrow", "오늘 아니면 내일", "아니면 내일", "2024-06-01"},
		{"month day beats days later", "6월 10일 3일 후", "3일 후", "2024-06-10"},
		{"tomorrow beats day after", "내일 모레", "모레", "2024-06-02"},
		{"only the expression", "내일", "", "2024-06-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, ref)
			if got.Title != tt.title {
				t.Errorf("title = %q, want %q", got.Title, tt.title)
			}
			if got.DueDate != tt.dueDate {
				t.Errorf("due date = %q, want %q", got.DueDate, tt.dueDate)
			}
			if got.Found() != (tt.dueDate != "") {
				t.Errorf("Found() = %v", got.Found())
			}
		})
	}
}

func TestParseRemovesOnlyMatchedSpan(t *testing.T) {
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	got := Parse("오늘 회의, 오늘 정리", ref)
	if got.Title != "회의, 오늘 정리" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestParseAcrossYearEnd(t *testing.T) {
	ref := time.Date(2024, 12, 31, 9, 0, 0, 0, time.Local)
	if got := Parse("내일 정산", ref); got.DueDate != "2025-01-01" {
		t.Fatalf("due date = %q, want 2025-01-01", got.DueDate)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 5 || d.Hour() != 0 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("2024/01/05"); err == nil {
		t.Fatal("expected error for non-canonical date")
	}
}
