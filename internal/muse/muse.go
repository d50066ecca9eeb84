// Package muse serves the canned writing prompts offered next to the
// composer. Nothing here looks at the draft beyond whether it has content.
package muse

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Action identifies one of the Muse prompts.
type Action string

const (
	FirstLine Action = "first-line"
	Tighten   Action = "tighten"
	Title     Action = "title"
	Expand    Action = "expand"
	Mood      Action = "mood"
)

// Info describes an action for menus.
type Info struct {
	Action      Action
	Label       string
	Description string
	// NeedsContent actions only give real suggestions once the draft has
	// some writing in it.
	NeedsContent bool
}

var actions = []Info{
	{Action: FirstLine, Label: "First line", Description: "Ideas for an opening sentence"},
	{Action: Tighten, Label: "Tighten", Description: "Ways to make the prose leaner", NeedsContent: true},
	{Action: Title, Label: "Title", Description: "Titles that fit what you wrote", NeedsContent: true},
	{Action: Expand, Label: "Expand", Description: "Places to slow down and deepen", NeedsContent: true},
	{Action: Mood, Label: "Mood", Description: "Moods that match your voice", NeedsContent: true},
}

var suggestions = map[Action][]string{
	FirstLine: {
		"The morning arrived without ceremony, as mornings do.",
		"I've been thinking about what you said, about how silence has weight.",
		"There's a particular kind of loneliness that comes with crowds.",
	},
	Tighten: {
		"Consider removing adverbs - they often weaken your prose.",
		"This paragraph could be split into two for better pacing.",
		"The opening sentence could be more direct and impactful.",
	},
	Title: {
		"Between Silences",
		"The Weight of Ordinary Things",
		"What Remains Unsaid",
	},
	Expand: {
		"What sensory details could you add here? Consider sound, smell, or texture.",
		"This moment feels rushed - what if you slowed down and explored the emotion?",
		"Consider adding a specific memory or image to ground this abstract idea.",
	},
	Mood: {
		"contemplative",
		"bittersweet",
		"quietly hopeful",
		"melancholic",
		"tender",
	},
}

var emptyPrompts = map[Action]string{
	Tighten: "Write something first, and I'll help you refine it.",
	Title:   "Write a few lines first, and I'll suggest titles that capture your voice.",
	Expand:  "Write something first, and I'll help you deepen it.",
	Mood:    "Write a few lines first, and I'll suggest moods that match your voice.",
}

// Actions returns every action in display order.
func Actions() []Info {
	out := make([]Info, len(actions))
	copy(out, actions)
	return out
}

// Lookup returns the description of a.
func Lookup(a Action) (Info, bool) {
	for _, info := range actions {
		if info.Action == a {
			return info, true
		}
	}
	return Info{}, false
}

// Result is the answer to one Suggest call. Prompt is set instead of
// Suggestions when the action needs content the draft does not have yet.
type Result struct {
	Action      Action
	Suggestions []string
	Prompt      string
}

// Applicable reports whether the suggestions can be applied to the draft.
func (r Result) Applicable() bool {
	return r.Prompt == "" && len(r.Suggestions) > 0
}

// Suggest answers action a. Unknown actions return an empty result.
func Suggest(a Action, hasContent bool) Result {
	info, ok := Lookup(a)
	if !ok {
		return Result{Action: a}
	}
	if info.NeedsContent && !hasContent {
		return Result{Action: a, Prompt: emptyPrompts[a]}
	}
	list := suggestions[a]
	out := make([]string, len(list))
	copy(out, list)
	return Result{Action: a, Suggestions: out}
}

// Filter ranks suggestions against query, best match first. A blank query
// returns the input unchanged.
func Filter(items []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]string, len(items))
		copy(out, items)
		return out
	}
	ranks := fuzzy.RankFindNormalizedFold(query, items)
	sort.Stable(ranks)
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}
