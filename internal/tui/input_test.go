package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditKeyAddCharacters(t *testing.T) {
	tests := []struct {
		name  string
		start string
		msg   tea.KeyMsg
		want  string
	}{
		{"append to empty", "", runes("a"), "a"},
		{"append letter", "hel", runes("l"), "hell"},
		{"append digit", "abc", runes("1"), "abc1"},
		{"append space", "hello", tea.KeyMsg{Type: tea.KeySpace}, "hello "},
		{"append special", "abc", runes("!"), "abc!"},
		{"paste", "hi ", runes("https://t.me/sdvig_bot?start=42"), "hi https://t.me/sdvig_bot?start=42"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editKey(tc.start, tc.msg)
			if got != tc.want {
				t.Errorf("editKey(%q, %v) = %q, want %q", tc.start, tc.msg, got, tc.want)
			}
		})
	}
}

func TestEditKeyBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"backspace on single char", "a", ""},
		{"backspace on longer string", "hello", "hell"},
		{"backspace on empty does nothing", "", ""},
		{"backspace removes whole rune", "héllo\U0001f600", "héllo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editKey(tc.start, tea.KeyMsg{Type: tea.KeyBackspace})
			if got != tc.want {
				t.Errorf("editKey(%q, backspace) = %q, want %q", tc.start, got, tc.want)
			}
		})
	}
}

func TestEditKeyIgnoresNonPrintableKeys(t *testing.T) {
	nonPrintable := []tea.KeyType{
		tea.KeyEnter, tea.KeyEsc, tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight,
		tea.KeyCtrlC, tea.KeyCtrlS, tea.KeyTab, tea.KeyShiftTab, tea.KeyF1,
		tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd,
	}

	original := "hello"
	for _, k := range nonPrintable {
		msg := tea.KeyMsg{Type: k}
		t.Run(msg.String(), func(t *testing.T) {
			got := editKey(original, msg)
			if got != original {
				t.Errorf("editKey(%q, %q) = %q, want unchanged %q", original, msg.String(), got, original)
			}
		})
	}
}

func TestEditKeyMaxInputLen(t *testing.T) {
	atLimit := strings.Repeat("a", maxInputLen)
	belowLimit := strings.Repeat("a", maxInputLen-1)
	nearLimit := strings.Repeat("a", maxInputLen-3)

	tests := []struct {
		name string
		text string
		msg  tea.KeyMsg
		want string
	}{
		{"at limit rejects new char", atLimit, runes("b"), atLimit},
		{"below limit accepts new char", belowLimit, runes("b"), belowLimit + "b"},
		{"paste clamped at limit", nearLimit, runes("abcdef"), nearLimit + "abc"},
		{"at limit backspace still works", atLimit, tea.KeyMsg{Type: tea.KeyBackspace}, atLimit[:len(atLimit)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := editKey(tt.text, tt.msg)
			if got != tt.want {
				t.Errorf("editKey(...): len(got)=%d runes, len(want)=%d runes",
					len([]rune(got)), len([]rune(tt.want)))
			}
		})
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"under limit", "hello", 10, "hello"},
		{"at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hell…"},
		{"empty string", "", 5, ""},
		{"single char over", "ab", 1, "…"},
		{"emoji", "\U0001f600\U0001f601\U0001f602", 2, "\U0001f600…"},
		{"multi-byte at boundary", "cafés are nice", 5, "café…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncStr(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncStr(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateToHeight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLines int
		want     string
	}{
		{"limits lines", "line1\nline2\nline3\nline4\n", 2, "line1\nline2\n"},
		{"fits", "line1\nline2\n", 5, "line1\nline2\n"},
		{"zero max returns all", "a\nb\n", 0, "a\nb\n"},
		{"negative max returns all", "a\nb\n", -1, "a\nb\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateToHeight(tt.input, tt.maxLines); got != tt.want {
				t.Errorf("truncateToHeight(%q, %d) = %q, want %q", tt.input, tt.maxLines, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		clock   string
		short   string
	}{
		{0, "00:00:00", "00:00"},
		{59, "00:00:59", "00:59"},
		{1500, "00:25:00", "25:00"},
		{3661, "01:01:01", "61:01"},
		{-5, "00:00:00", "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.clock {
			t.Errorf("formatClock(%d) = %q, want %q", tt.seconds, got, tt.clock)
		}
		if got := formatCountdown(tt.seconds); got != tt.short {
			t.Errorf("formatCountdown(%d) = %q, want %q", tt.seconds, got, tt.short)
		}
	}
}

func TestRenderInputPlaceholder(t *testing.T) {
	got := renderInput("log", "", "what did you do?", false, 0)
	if !strings.Contains(got, "what did you do?") {
		t.Errorf("renderInput() = %q, want placeholder", got)
	}
	got = renderInput("log", "wireframes", "placeholder", true, 0)
	if !strings.Contains(got, "wireframes") || strings.Contains(got, "placeholder") {
		t.Errorf("renderInput() = %q, want typed text without placeholder", got)
	}
}
