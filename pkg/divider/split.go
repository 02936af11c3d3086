package divider

import "strings"

// Group is a contiguous run of normalized lines forming one statement.
type Group []Line

// Header returns the first line of the group, or "" for an empty group.
func (g Group) Header() string {
	if len(g) == 0 {
		return ""
	}
	return g[0].Content
}

// Query joins the group's lines with "\n".
func (g Group) Query() string {
	parts := make([]string, len(g))
	for i, l := range g {
		parts[i] = l.Content
	}
	return strings.Join(parts, "\n")
}

// layout is the structural shape of a normalized input.
type layout int

const (
	// layoutSingle: one begin marker, the whole input is one statement.
	layoutSingle layout = iota
	// layoutOnePerLine: every line is a self-terminated statement.
	layoutOnePerLine
	// layoutRanged: statements span begin markers.
	layoutRanged
)

func (l layout) String() string {
	switch l {
	case layoutSingle:
		return "single"
	case layoutOnePerLine:
		return "one-per-line"
	default:
		return "ranged"
	}
}

// boundaries returns the positions of begin and end lines. Line 0 always
// begins a statement; every end line with a successor starts the next one.
func boundaries(lines []Line) (begins, ends []int) {
	begins = []int{0}
	for _, l := range lines {
		if !strings.HasSuffix(l.Content, ";") {
			continue
		}
		ends = append(ends, l.Index)
		if l.Index+1 < len(lines) {
			begins = append(begins, l.Index+1)
		}
	}
	return begins, ends
}

// classify picks the split strategy for the given boundary markers.
func classify(begins, ends []int) layout {
	if len(begins) == 1 {
		return layoutSingle
	}
	n := min(len(begins), len(ends))
	for i := 0; i < n; i++ {
		if begins[i] != ends[i] {
			return layoutRanged
		}
	}
	return layoutOnePerLine
}

// Split partitions normalized lines into statement groups.
//
// A statement ends at a line whose content ends with ';'. When the input
// contains a single statement it is returned whole; when every line is its own
// statement each line becomes a group. Otherwise groups run from one begin
// marker to the next, and the final group is kept only if its last line is
// terminated.
func Split(lines []Line) []Group {
	if len(lines) == 0 {
		return nil
	}
	begins, ends := boundaries(lines)
	switch classify(begins, ends) {
	case layoutSingle:
		return splitSingle(lines)
	case layoutOnePerLine:
		return splitOnePerLine(lines)
	default:
		return splitRanged(lines, begins)
	}
}

func splitSingle(lines []Line) []Group {
	return []Group{Group(lines)}
}

func splitOnePerLine(lines []Line) []Group {
	groups := make([]Group, len(lines))
	for i := range lines {
		groups[i] = Group(lines[i : i+1])
	}
	return groups
}

func splitRanged(lines []Line, begins []int) []Group {
	groups := make([]Group, 0, len(begins))
	for k := 0; k < len(begins)-1; k++ {
		groups = append(groups, Group(lines[begins[k]:begins[k+1]]))
	}
	last := begins[len(begins)-1]
	if strings.HasSuffix(lines[len(lines)-1].Content, ";") {
		groups = append(groups, Group(lines[last:]))
	}
	return groups
}
