package crop

import (
	"strings"
	"testing"
)

func TestBuildFilterExact(t *testing.T) {
	got := BuildFilter(Rect{X: 10, Y: 10, Width: 100, Height: 50}, OutputSettings{Width: 200, Height: 150})
	want := `crop=w=min(100\,in_w):h=min(50\,in_h):x=min(max(10\,0)\,in_w-min(100\,in_w)):y=min(max(10\,0)\,in_h-min(50\,in_h)),scale=200:150`
	if got != want {
		t.Fatalf("BuildFilter mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestBuildFilterUsesRuntimeFrameSize(t *testing.T) {
	got := BuildFilter(Rect{X: 10, Y: 10, Width: 100, Height: 50}, OutputSettings{Width: 200, Height: 150})
	for _, fragment := range []string{"min(100\\,in_w)", "min(50\\,in_h)", "max(10\\,0)", "in_w-", "in_h-", "scale=200:150"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %q", fragment, got)
		}
	}
}

func TestBuildFilterChainHasSingleBareComma(t *testing.T) {
	got := BuildFilter(Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, OutputSettings{Width: 1280, Height: 720})
	bare := 0
	for i := 0; i < len(got); i++ {
		if got[i] == ',' && (i == 0 || got[i-1] != '\\') {
			bare++
		}
	}
	if bare != 1 {
		t.Fatalf("expected exactly one unescaped comma separating crop and scale, got %d in %q", bare, got)
	}
	if !strings.HasPrefix(got, "crop=") || !strings.HasSuffix(got, ",scale=1280:720") {
		t.Fatalf("unexpected filter chain %q", got)
	}
}
