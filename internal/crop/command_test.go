package crop

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"vidcrop/internal/services"
)

func sampleRequest() Request {
	return Request{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mov",
		Crop:       Rect{X: 10, Y: 10, Width: 100, Height: 50},
		Output:     OutputSettings{Width: 200, Height: 150, Format: "mov"},
	}
}

func TestAssembleMovWithoutTrim(t *testing.T) {
	cmd, err := Assemble("/opt/ffmpeg", sampleRequest())
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if cmd.Binary != "/opt/ffmpeg" {
		t.Fatalf("unexpected binary %q", cmd.Binary)
	}
	filter := BuildFilter(Rect{X: 10, Y: 10, Width: 100, Height: 50}, OutputSettings{Width: 200, Height: 150})
	want := []string{
		"-y",
		"-i", "/videos/in.mp4",
		"-map", "0:v:0", "-map", "0:a?",
		"-vf", filter,
		"-c:v", "libx264", "-preset", "veryfast", "-crf", "18", "-pix_fmt", "yuv420p", "-c:a", "aac",
		"-movflags", "+faststart",
		"/videos/out.mov",
	}
	if !slices.Equal(cmd.Args, want) {
		t.Fatalf("args mismatch\n got: %q\nwant: %q", cmd.Args, want)
	}
	if slices.Contains(cmd.Args, "-ss") || slices.Contains(cmd.Args, "-t") {
		t.Fatalf("untrimmed command must not seek: %q", cmd.Args)
	}
}

func TestAssembleWithTrim(t *testing.T) {
	req := sampleRequest()
	req.Trim = &TrimRange{Start: 2.0, End: 5.0}
	cmd, err := Assemble("ffmpeg", req)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	wantPrefix := []string{"-y", "-ss", "2.000", "-i", "/videos/in.mp4", "-t", "3.000", "-map", "0:v:0"}
	if !slices.Equal(cmd.Args[:len(wantPrefix)], wantPrefix) {
		t.Fatalf("trimmed prefix mismatch\n got: %q\nwant: %q", cmd.Args[:len(wantPrefix)], wantPrefix)
	}
}

func TestAssembleTrimPrecision(t *testing.T) {
	req := sampleRequest()
	req.Trim = &TrimRange{Start: 1.23456, End: 4.5}
	cmd, err := Assemble("ffmpeg", req)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if cmd.Args[2] != "1.235" {
		t.Fatalf("expected start rounded to 3 decimals, got %q", cmd.Args[2])
	}
	if cmd.Args[6] != "3.265" {
		t.Fatalf("expected duration rounded to 3 decimals, got %q", cmd.Args[6])
	}
}

func TestAssembleRejectsInvertedTrim(t *testing.T) {
	req := sampleRequest()
	req.Trim = &TrimRange{Start: 5.0, End: 2.0}
	_, err := Assemble("ffmpeg", req)
	if !errors.Is(err, ErrInvalidTrim) {
		t.Fatalf("expected ErrInvalidTrim, got %v", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if err.Error() != "trim duration must be greater than 0" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestResolveTrimClamps(t *testing.T) {
	cases := []struct {
		name      string
		trim      TrimRange
		wantStart float64
		wantDur   float64
		wantErr   bool
	}{
		{"normal", TrimRange{Start: 2, End: 5}, 2, 3, false},
		{"negative start", TrimRange{Start: -4, End: 1.5}, 0, 1.5, false},
		{"inverted", TrimRange{Start: 5, End: 2}, 0, 0, true},
		{"empty", TrimRange{Start: 3, End: 3}, 0, 0, true},
		{"both negative", TrimRange{Start: -2, End: -1}, 0, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, dur, err := ResolveTrim(tc.trim)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTrim) {
					t.Fatalf("expected ErrInvalidTrim, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveTrim returned error: %v", err)
			}
			if start != tc.wantStart || dur != tc.wantDur {
				t.Fatalf("ResolveTrim = (%v, %v), want (%v, %v)", start, dur, tc.wantStart, tc.wantDur)
			}
		})
	}
}

func TestAssembleNormalizesGeometry(t *testing.T) {
	req := sampleRequest()
	req.Crop = Rect{X: 3, Y: 5, Width: 101, Height: 51}
	req.Output = OutputSettings{Width: 201, Height: 151, Format: "mp4"}
	cmd, err := Assemble("ffmpeg", req)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	idx := slices.Index(cmd.Args, "-vf")
	if idx < 0 {
		t.Fatalf("missing -vf in %q", cmd.Args)
	}
	filter := cmd.Args[idx+1]
	for _, fragment := range []string{"min(100\\,in_w)", "min(50\\,in_h)", "max(2\\,0)", "max(4\\,0)", "scale=200:150"} {
		if !strings.Contains(filter, fragment) {
			t.Fatalf("expected %q in %q", fragment, filter)
		}
	}
}

func TestAssembleOutputPathIsLast(t *testing.T) {
	for _, format := range []string{"webm", "avi", "mov", "mp4", "XYZ"} {
		req := sampleRequest()
		req.Output.Format = format
		cmd, err := Assemble("ffmpeg", req)
		if err != nil {
			t.Fatalf("Assemble(%s) returned error: %v", format, err)
		}
		if cmd.Args[len(cmd.Args)-1] != req.OutputPath {
			t.Fatalf("%s: output path must be last, got %q", format, cmd.Args)
		}
		tail := cmd.Args[len(cmd.Args)-1-len(FormatArgs(format)) : len(cmd.Args)-1]
		if !slices.Equal(tail, FormatArgs(format)) {
			t.Fatalf("%s: format args must precede output path, got %q", format, tail)
		}
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Binary: "ffmpeg", Args: []string{"-i", "my clip.mp4", "-vf", `crop=w=min(2\,in_w)`, "it's.mp4", ""}}
	got := cmd.String()
	want := `ffmpeg -i 'my clip.mp4' -vf 'crop=w=min(2\,in_w)' 'it'\''s.mp4' ''`
	if got != want {
		t.Fatalf("String mismatch\n got: %s\nwant: %s", got, want)
	}
	if argv := cmd.Argv(); argv[0] != "ffmpeg" || len(argv) != len(cmd.Args)+1 {
		t.Fatalf("unexpected argv %q", argv)
	}
}
