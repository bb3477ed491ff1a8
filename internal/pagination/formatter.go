package pagination

import (
	"math"
	"math/bits"
	"strconv"
)

// Navigation labels for the previous/next entries of meta.links. The
// arrows are HTML entities.
const (
	PreviousLabel  = "&laquo; Previous"
	NextLabel      = "Next &raquo;"
	SeparatorLabel = "..."
)

// Formatter turns store pages into paginated envelopes.
type Formatter[T any] struct {
	cfg Config
}

// NewFormatter creates a Formatter using cfg for the link window size.
func NewFormatter[T any](cfg Config) *Formatter[T] {
	return &Formatter[T]{cfg: cfg}
}

// Format builds the envelope for p. current_page is reported as requested
// even when it lies past the last page; such pages have no items and
// null from/to.
func (f *Formatter[T]) Format(p Page[T]) Envelope[T] {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = f.cfg.DefaultPerPage
	}
	current := p.CurrentPage
	if current < 1 {
		current = 1
	}
	last := LastPage(p.Total, perPage)

	items := p.Items
	if items == nil {
		items = []T{}
	}

	meta := Meta{
		CurrentPage: current,
		LastPage:    last,
		Path:        p.Path,
		PerPage:     perPage,
		Total:       p.Total,
	}
	if offset, ok := pageOffset(current, perPage); ok && len(items) > 0 && offset < p.Total {
		from := offset + 1
		to := offset + int64(len(items))
		meta.From = &from
		meta.To = &to
	} else {
		items = []T{}
	}

	links := Links{
		First: pageURL(p.Path, p.Query, 1),
		Last:  pageURL(p.Path, p.Query, last),
	}
	if current > 1 {
		u := pageURL(p.Path, p.Query, current-1)
		links.Prev = &u
	}
	if current < last {
		u := pageURL(p.Path, p.Query, current+1)
		links.Next = &u
	}

	meta.Links = f.linkList(p, current, last, links)

	return Envelope[T]{Data: items, Links: links, Meta: meta}
}

func (f *Formatter[T]) linkList(p Page[T], current, last int, nav Links) []Link {
	var prevPage, nextPage *int
	if nav.Prev != nil {
		n := current - 1
		prevPage = &n
	}
	if nav.Next != nil {
		n := current + 1
		nextPage = &n
	}

	out := []Link{{URL: nav.Prev, Label: PreviousLabel, Page: prevPage}}
	for _, n := range Window(current, last, f.cfg.OnEachSide) {
		if n == Gap {
			out = append(out, Link{Label: SeparatorLabel})
			continue
		}
		u := pageURL(p.Path, p.Query, n)
		page := n
		out = append(out, Link{
			URL:    &u,
			Label:  strconv.Itoa(n),
			Page:   &page,
			Active: n == current,
		})
	}
	return append(out, Link{URL: nav.Next, Label: NextLabel, Page: nextPage})
}

// pageOffset returns the number of items before page, or false when that
// count does not fit in an int64.
func pageOffset(page, perPage int) (int64, bool) {
	hi, lo := bits.Mul64(uint64(page-1), uint64(perPage))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}
