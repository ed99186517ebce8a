package vmhost

import "testing"

func TestParseTimeAndFormat(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", `
		auto t = ParseTime("2026-03-05", "%Y-%m-%d");
		return t.format("%Y/%m/%d");
	`)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	if got.Str() != "2026/03/05" {
		t.Errorf("result = %q, want %q", got.Str(), "2026/03/05")
	}
}

func TestParseTimeYear(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", `
		auto t = ParseTime("2026-03-05", "%Y-%m-%d");
		return t.year();
	`)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	f, _ := mustFloat(t, got)
	if f != 2026 {
		t.Errorf("year() = %v, want 2026", f)
	}
}

func TestParseTimeInvalidFormatRaises(t *testing.T) {
	e := New()
	_, err := e.CompileAndRun("<test>", `return ParseTime("x", "%Q");`)
	if err == nil {
		t.Fatal("CompileAndRun: expected a time-format runtime error for an unsupported directive")
	}
}

func TestDurationBetweenDays(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", `
		auto a = ParseTime("2026-03-05", "%Y-%m-%d");
		auto b = ParseTime("2026-03-01", "%Y-%m-%d");
		auto d = DurationBetween(a, b);
		return d.days();
	`)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	f, _ := mustFloat(t, got)
	if f != 4 {
		t.Errorf("days() = %v, want 4", f)
	}
}
