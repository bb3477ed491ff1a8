package pagination

// Gap marks a "..." separator in the sequence returned by Window.
const Gap = 0

// Window returns the page numbers to render for navigation, with Gap
// where a run of pages is elided.
//
// Short result sets list every page. Longer ones show a block at the
// start (when current is near it), a block at the end (when current is
// near that), or current±onEachSide between the first two and last two
// pages.
func Window(current, last, onEachSide int) []int {
	if onEachSide < 0 {
		onEachSide = 0
	}
	if last < onEachSide*2+8 {
		return pageRange(1, last)
	}

	window := onEachSide + 4
	start := []int{1, 2}
	finish := []int{last - 1, last}

	switch {
	case current <= window:
		return join(pageRange(1, window+onEachSide), finish)
	case current > last-window:
		return join(start, pageRange(last-(window+onEachSide-1), last))
	default:
		return join(start, pageRange(current-onEachSide, current+onEachSide), finish)
	}
}

func pageRange(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

func join(parts ...[]int) []int {
	var out []int
	for i, part := range parts {
		if i > 0 {
			out = append(out, Gap)
		}
		out = append(out, part...)
	}
	return out
}
