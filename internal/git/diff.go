package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Patch is the textual difference of one path between HEAD and the working tree.
type Patch struct {
	Path      string
	Text      string
	Additions int
	Deletions int
	Hunks     []Hunk
}

// Hunk is one contiguous block of changes in a patch.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	// Content holds the header line followed by the hunk lines.
	Content string
}

// IsEmpty reports whether the patch carries no changes.
func (p Patch) IsEmpty() bool {
	return strings.TrimSpace(p.Text) == ""
}

// DiffFile returns the patch of a tracked path against HEAD.
func (r *Repository) DiffFile(ctx context.Context, path string) (Patch, error) {
	out, err := r.runner.RunRaw(ctx, "--literal-pathspecs", "diff", "--no-color", "--no-ext-diff", "HEAD", "--", path)
	if err != nil {
		return Patch{}, fmt.Errorf("failed to diff %s: %w", path, err)
	}
	return parsePatch(path, out), nil
}

// DiffFiles returns the patches of every tracked modified path, or of the
// given paths when any are passed.
func (r *Repository) DiffFiles(ctx context.Context, paths []string) ([]Patch, error) {
	if len(paths) == 0 {
		var err error
		paths, err = r.TrackedModifiedFiles(ctx)
		if err != nil {
			return nil, err
		}
	}
	patches := make([]Patch, 0, len(paths))
	for _, p := range paths {
		patch, err := r.DiffFile(ctx, p)
		if err != nil {
			return nil, err
		}
		if patch.IsEmpty() {
			continue
		}
		patches = append(patches, patch)
	}
	return patches, nil
}

// hunkHeader matches "@@ -old_start,old_count +new_start,new_count @@".
var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

func parsePatch(path, text string) Patch {
	patch := Patch{Path: path, Text: text}
	var current *Hunk
	var body []string
	flush := func() {
		if current != nil {
			current.Content = strings.Join(body, "\n")
			patch.Hunks = append(patch.Hunks, *current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if match := hunkHeader.FindStringSubmatch(line); match != nil {
			flush()
			current = &Hunk{
				OldStart: atoi(match[1]),
				OldCount: count(match[2]),
				NewStart: atoi(match[3]),
				NewCount: count(match[4]),
			}
			body = []string{line}
			continue
		}
		if current == nil || line == "" {
			continue
		}
		body = append(body, line)
		switch line[0] {
		case '+':
			patch.Additions++
		case '-':
			patch.Deletions++
		}
	}
	flush()
	return patch
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// count reads a hunk line count, which git omits when it is 1.
func count(s string) int {
	if s == "" {
		return 1
	}
	return atoi(s)
}
