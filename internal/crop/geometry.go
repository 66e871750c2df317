package crop

// MakeEven coerces v to the nearest even value the encoder accepts: anything
// below 2 becomes 2, otherwise the low bit is cleared.
func MakeEven(v uint32) uint32 {
	if v < 2 {
		return 2
	}
	return v &^ 1
}

// Normalize returns copies of rect and out with every coordinate and
// dimension made even and at least 2.
func Normalize(rect Rect, out OutputSettings) (Rect, OutputSettings, error) {
	rect = Rect{
		X:      MakeEven(rect.X),
		Y:      MakeEven(rect.Y),
		Width:  MakeEven(rect.Width),
		Height: MakeEven(rect.Height),
	}
	out.Width = MakeEven(out.Width)
	out.Height = MakeEven(out.Height)

	// Unreachable with the current coercion; kept so a looser MakeEven
	// cannot hand ffmpeg a zero-sized frame.
	if rect.Width == 0 || rect.Height == 0 {
		return Rect{}, OutputSettings{}, newError(ErrInvalidGeometry, nil, "crop size is empty after normalization")
	}
	if out.Width == 0 || out.Height == 0 {
		return Rect{}, OutputSettings{}, newError(ErrInvalidGeometry, nil, "output size is empty after normalization")
	}
	return rect, out, nil
}
