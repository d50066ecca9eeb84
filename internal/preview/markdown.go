// Package preview renders a chapter draft the way readers will see it.
package preview

import (
	"fmt"
	"strings"

	"github.com/atomicstack/chapters/internal/composer"
	"github.com/atomicstack/chapters/internal/store"
)

// Markdown converts d into markdown. themeNames maps theme ids to display
// names; unknown ids are shown by number. Blank blocks are skipped.
func Markdown(d store.Draft, themeNames map[int]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.DisplayTitle())

	var meta []string
	if mood := strings.TrimSpace(d.Mood); mood != "" {
		meta = append(meta, fmt.Sprintf("*Mood:* %s", mood))
	}
	if ids := d.Themes.IDs(); len(ids) > 0 {
		names := make([]string, len(ids))
		for i, id := range ids {
			if name, ok := themeNames[id]; ok {
				names[i] = name
			} else {
				names[i] = fmt.Sprintf("#%d", id)
			}
		}
		meta = append(meta, fmt.Sprintf("*Themes:* %s", strings.Join(names, ", ")))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " | "))
		b.WriteString("\n\n")
	}

	written := 0
	for _, block := range d.Blocks.Blocks() {
		if block.Blank() {
			continue
		}
		b.WriteString(blockMarkdown(block.Content))
		b.WriteString("\n\n")
		written++
	}
	if written == 0 {
		b.WriteString("_Nothing written yet._\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func blockMarkdown(c composer.Content) string {
	switch v := c.(type) {
	case composer.Text:
		return strings.TrimSpace(v.Text)
	case composer.Quote:
		var lines []string
		for _, line := range strings.Split(strings.TrimSpace(v.Text), "\n") {
			lines = append(lines, "> "+line)
		}
		if src := strings.TrimSpace(v.Source); src != "" {
			lines = append(lines, ">", "> *"+src+"*")
		}
		return strings.Join(lines, "\n")
	case composer.Image:
		out := fmt.Sprintf("![%s](%s)", v.Caption, v.URL)
		if v.Caption != "" {
			out += "\n\n*" + v.Caption + "*"
		}
		return out
	case composer.Audio:
		return "Audio: " + link(v.Title, v.URL)
	case composer.Video:
		return "Video: " + link(v.Caption, v.URL)
	}
	return ""
}

func link(label, url string) string {
	if strings.TrimSpace(label) == "" {
		label = url
	}
	return fmt.Sprintf("[%s](%s)", label, url)
}
