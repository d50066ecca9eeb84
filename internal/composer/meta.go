package composer

import "strings"

const (
	MaxThemes     = 3
	MaxMoodLength = 100
)

// SuggestedMoods are offered as one-key picks next to the free mood input.
var SuggestedMoods = []string{
	"contemplative",
	"bittersweet",
	"hopeful",
	"melancholic",
	"tender",
	"urgent",
	"reflective",
	"joyful",
}

// ClampMood trims surrounding space and cuts the mood to MaxMoodLength runes.
func ClampMood(mood string) string {
	mood = strings.TrimSpace(mood)
	r := []rune(mood)
	if len(r) > MaxMoodLength {
		return strings.TrimSpace(string(r[:MaxMoodLength]))
	}
	return mood
}

// ThemeSet is an ordered set of at most MaxThemes theme ids.
type ThemeSet struct {
	ids []int
}

// NewThemeSet keeps the first MaxThemes distinct ids.
func NewThemeSet(ids ...int) ThemeSet {
	var s ThemeSet
	for _, id := range ids {
		s, _ = s.Add(id)
	}
	return s
}

// IDs returns the selected ids in selection order. The result is never nil.
func (s ThemeSet) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s ThemeSet) Len() int {
	return len(s.ids)
}

// Full reports whether no more themes can be added.
func (s ThemeSet) Full() bool {
	return len(s.ids) >= MaxThemes
}

func (s ThemeSet) Has(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Add selects id. It is a no-op when id is already selected or the set is
// full.
func (s ThemeSet) Add(id int) (ThemeSet, bool) {
	if s.Has(id) || s.Full() {
		return s, false
	}
	ids := make([]int, len(s.ids), len(s.ids)+1)
	copy(ids, s.ids)
	return ThemeSet{ids: append(ids, id)}, true
}

// Remove deselects id.
func (s ThemeSet) Remove(id int) (ThemeSet, bool) {
	if !s.Has(id) {
		return s, false
	}
	ids := make([]int, 0, len(s.ids)-1)
	for _, v := range s.ids {
		if v != id {
			ids = append(ids, v)
		}
	}
	return ThemeSet{ids: ids}, true
}

// Toggle adds id when absent and removes it when present.
func (s ThemeSet) Toggle(id int) (ThemeSet, bool) {
	if s.Has(id) {
		return s.Remove(id)
	}
	return s.Add(id)
}
