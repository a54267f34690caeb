package layout

import "testing"

func TestTooSmallWidth(t *testing.T) {
	l := Calculate(79, 24)
	if !l.TooSmall {
		t.Error("expected TooSmall for width 79")
	}
}

func TestTooSmallHeight(t *testing.T) {
	l := Calculate(80, 23)
	if !l.TooSmall {
		t.Error("expected TooSmall for height 23")
	}
}

func TestMinimumViable(t *testing.T) {
	l := Calculate(80, 24)
	if l.TooSmall {
		t.Error("80x24 should not be too small")
	}
	// Verify dimensions sum correctly
	if l.ScriptListWidth+l.TerminalWidth != 80 {
		t.Errorf("width mismatch: left(%d) + right(%d) = %d, want 80",
			l.ScriptListWidth, l.TerminalWidth, l.ScriptListWidth+l.TerminalWidth)
	}
	if l.TerminalHeight+l.InputBarHeight+1 != 24 {
		t.Errorf("height mismatch: terminal(%d) + input(%d) + status(1) = %d, want 24",
			l.TerminalHeight, l.InputBarHeight, l.TerminalHeight+l.InputBarHeight+1)
	}
}

func TestStandard120x40(t *testing.T) {
	l := Calculate(120, 40)
	if l.TooSmall {
		t.Error("120x40 should not be too small")
	}

	// Verify all dimensions sum correctly
	if l.ScriptListWidth+l.TerminalWidth != 120 {
		t.Errorf("width: left(%d) + right(%d) = %d, want 120",
			l.ScriptListWidth, l.TerminalWidth, l.ScriptListWidth+l.TerminalWidth)
	}
	if l.ScriptListHeight+1 != 40 {
		t.Errorf("script list height: got %d, want %d", l.ScriptListHeight, 39)
	}
	if l.TerminalHeight+l.InputBarHeight != l.ScriptListHeight {
		t.Errorf("right column: terminal(%d) + input(%d) != left column %d",
			l.TerminalHeight, l.InputBarHeight, l.ScriptListHeight)
	}
	if l.StatusBarWidth != 120 {
		t.Errorf("status bar width: got %d, want 120", l.StatusBarWidth)
	}

	// Left column should be ~32% of the width
	expectedLeft := int(120 * 0.32)
	if l.ScriptListWidth != expectedLeft {
		t.Errorf("script list width: got %d, want %d", l.ScriptListWidth, expectedLeft)
	}
	if l.InputBarWidth != l.TerminalWidth {
		t.Error("input bar should match terminal width")
	}
}

func TestInputBarFixedHeight(t *testing.T) {
	for _, size := range [][2]int{{80, 24}, {120, 40}, {200, 60}} {
		l := Calculate(size[0], size[1])
		if l.InputBarHeight != 3 {
			t.Errorf("Calculate(%d, %d): input bar height %d, want 3",
				size[0], size[1], l.InputBarHeight)
		}
	}
}
