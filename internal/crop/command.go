package crop

import (
	"math"
	"strconv"
	"strings"
)

// Command is an assembled encoder invocation. Args excludes the binary.
type Command struct {
	Binary string
	Args   []string
}

// Argv returns the binary followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Binary)
	return append(argv, c.Args...)
}

// String renders the command as a shell-pasteable line.
func (c Command) String() string {
	argv := c.Argv()
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

// Assemble builds the full ffmpeg invocation for req. Geometry is normalized
// first; a trim range whose clamped duration is not positive is rejected.
// Paths and format are not validated.
func Assemble(binary string, req Request) (Command, error) {
	rect, out, err := Normalize(req.Crop, req.Output)
	if err != nil {
		return Command{}, err
	}

	input, err := inputArgs(req.InputPath, req.Trim)
	if err != nil {
		return Command{}, err
	}

	args := concat(
		[]string{"-y"},
		input,
		[]string{"-map", "0:v:0", "-map", "0:a?"},
		[]string{"-vf", BuildFilter(rect, out)},
		FormatArgs(req.Output.Format),
		[]string{req.OutputPath},
	)
	return Command{Binary: binary, Args: args}, nil
}

// ResolveTrim clamps start and end to be non-negative with end >= start and
// returns the start offset and duration.
func ResolveTrim(trim TrimRange) (start, duration float64, err error) {
	start = math.Max(trim.Start, 0)
	end := math.Max(math.Max(trim.End, 0), start)
	duration = end - start
	// NaN compares false everywhere, so test for the positive case.
	if !(duration > 0) {
		return 0, 0, newError(ErrInvalidTrim, nil, "trim duration must be greater than 0")
	}
	return start, duration, nil
}

func inputArgs(input string, trim *TrimRange) ([]string, error) {
	if trim == nil {
		return []string{"-i", input}, nil
	}
	start, duration, err := ResolveTrim(*trim)
	if err != nil {
		return nil, err
	}
	return []string{
		"-ss", seconds(start),
		"-i", input,
		"-t", seconds(duration),
	}, nil
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func concat(parts ...[]string) []string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]string, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
