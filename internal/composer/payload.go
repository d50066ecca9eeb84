package composer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// BlockPayload is a block as it leaves the composer: kind, content and the
// index it held when the payload was built.
type BlockPayload struct {
	Kind     Kind
	Content  Content
	Position int
}

type blockPayloadJSON struct {
	BlockType string          `json:"block_type"`
	Content   json.RawMessage `json:"content"`
	Position  int             `json:"position"`
}

func (p BlockPayload) MarshalJSON() ([]byte, error) {
	content := p.Content
	if content == nil {
		content = EmptyContent(p.Kind)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockPayloadJSON{
		BlockType: string(p.Kind),
		Content:   raw,
		Position:  p.Position,
	})
}

func (p *BlockPayload) UnmarshalJSON(data []byte) error {
	var wire blockPayloadJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	kind, err := ParseKind(wire.BlockType)
	if err != nil {
		return err
	}
	content, err := DecodeContent(kind, wire.Content)
	if err != nil {
		return err
	}
	*p = BlockPayload{Kind: kind, Content: content, Position: wire.Position}
	return nil
}

// PublishPayload is the snapshot handed to save and publish collaborators.
type PublishPayload struct {
	Title  string         `json:"title"`
	Blocks []BlockPayload `json:"blocks"`
	Themes []int          `json:"themes"`
	Mood   string         `json:"mood,omitempty"`
}

// ToPayload snapshots a draft. Each block's position is its current index.
func ToPayload(title string, blocks Collection, themes ThemeSet, mood string) PublishPayload {
	out := make([]BlockPayload, len(blocks.blocks))
	for i, b := range blocks.blocks {
		content := b.Content
		if content == nil {
			content = Text{}
		}
		out[i] = BlockPayload{Kind: content.Kind(), Content: content, Position: i}
	}
	return PublishPayload{
		Title:  title,
		Blocks: out,
		Themes: themes.IDs(),
		Mood:   mood,
	}
}

// Collection rebuilds a collection from the payload, ordering blocks by their
// recorded position. Block ids are freshly assigned.
func (p PublishPayload) Collection() Collection {
	sorted := make([]BlockPayload, len(p.Blocks))
	copy(sorted, p.Blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	blocks := make([]Block, len(sorted))
	for i, bp := range sorted {
		content := bp.Content
		if content == nil {
			content = EmptyContent(bp.Kind)
		}
		blocks[i] = Block{Content: content}
	}
	return NewCollection(blocks)
}

// Validate checks a payload that arrived from outside the composer.
func (p PublishPayload) Validate() error {
	if len(p.Blocks) == 0 {
		return fmt.Errorf("payload has no blocks")
	}
	if len(p.Blocks) > MaxBlocks {
		return fmt.Errorf("payload has %d blocks, limit is %d", len(p.Blocks), MaxBlocks)
	}
	if len(p.Themes) > MaxThemes {
		return fmt.Errorf("payload has %d themes, limit is %d", len(p.Themes), MaxThemes)
	}
	if n := len([]rune(p.Mood)); n > MaxMoodLength {
		return fmt.Errorf("mood is %d characters, limit is %d", n, MaxMoodLength)
	}
	return nil
}

// CanPublish is the publish guard: a non-blank title and at least one block
// with content.
func CanPublish(title string, blocks Collection) bool {
	return strings.TrimSpace(title) != "" && blocks.HasContent()
}
