package composer

import (
	"github.com/google/uuid"
)

const (
	MaxBlocks      = 12
	MaxMediaBlocks = 2
)

var newBlockID = uuid.NewString

// Block is one typed unit of chapter content. Its position is its index in
// the owning collection and is never stored on the block.
type Block struct {
	ID      string
	Content Content
}

// Kind returns the variant of the block's content.
func (b Block) Kind() Kind {
	if b.Content == nil {
		return KindText
	}
	return b.Content.Kind()
}

// Blank reports whether the block has no primary content.
func (b Block) Blank() bool {
	return IsBlank(b.Content)
}

// Direction is the way MoveBlock shifts a block.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Collection is an ordered, bounded list of blocks. Values are immutable:
// every edit returns a new Collection and leaves the receiver untouched.
type Collection struct {
	blocks []Block
}

// Seed returns the collection a new draft starts with: one empty text block.
func Seed() Collection {
	return Collection{blocks: []Block{{ID: newBlockID(), Content: Text{}}}}
}

// NewCollection builds a collection from loaded blocks. An empty input yields
// the seed collection. Blocks beyond MaxBlocks are dropped, missing content
// becomes empty text, and blank or duplicate ids are replaced. The media cap
// is only enforced on insertion and is not applied here.
func NewCollection(blocks []Block) Collection {
	if len(blocks) == 0 {
		return Seed()
	}
	if len(blocks) > MaxBlocks {
		blocks = blocks[:MaxBlocks]
	}
	seen := make(map[string]struct{}, len(blocks))
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		if b.Content == nil {
			b.Content = Text{}
		}
		if _, dup := seen[b.ID]; b.ID == "" || dup {
			b.ID = newBlockID()
		}
		seen[b.ID] = struct{}{}
		out[i] = b
	}
	return Collection{blocks: out}
}

// Len returns the number of blocks.
func (c Collection) Len() int {
	return len(c.blocks)
}

// Blocks returns a copy of the blocks in order.
func (c Collection) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// At returns the block at index i.
func (c Collection) At(i int) (Block, bool) {
	if i < 0 || i >= len(c.blocks) {
		return Block{}, false
	}
	return c.blocks[i], true
}

// Get returns the block with id.
func (c Collection) Get(id string) (Block, bool) {
	return c.At(c.Index(id))
}

// Index returns the position of the block with id, or -1.
func (c Collection) Index(id string) int {
	for i, b := range c.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Positions returns the position of every block in order, which is always
// 0..Len()-1.
func (c Collection) Positions() []int {
	out := make([]int, len(c.blocks))
	for i := range c.blocks {
		out[i] = i
	}
	return out
}

// IDs returns block ids in order.
func (c Collection) IDs() []string {
	out := make([]string, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = b.ID
	}
	return out
}

// MediaCount returns how many image, audio and video blocks exist.
func (c Collection) MediaCount() int {
	n := 0
	for _, b := range c.blocks {
		if b.Kind().IsMedia() {
			n++
		}
	}
	return n
}

// CanAddBlock reports whether any block can still be appended.
func (c Collection) CanAddBlock() bool {
	return len(c.blocks) < MaxBlocks
}

// CanAdd reports whether a block of kind k would be accepted.
func (c Collection) CanAdd(k Kind) bool {
	if !k.Valid() || !c.CanAddBlock() {
		return false
	}
	if k.IsMedia() && c.MediaCount() >= MaxMediaBlocks {
		return false
	}
	return true
}

// HasContent reports whether at least one block is not blank.
func (c Collection) HasContent() bool {
	for _, b := range c.blocks {
		if !b.Blank() {
			return true
		}
	}
	return false
}

// AddBlock appends an empty block of kind k. When a bound would be exceeded
// the receiver is returned unchanged and ok is false.
func (c Collection) AddBlock(k Kind) (next Collection, added Block, ok bool) {
	if !c.CanAdd(k) {
		return c, Block{}, false
	}
	added = Block{ID: newBlockID(), Content: EmptyContent(k)}
	blocks := make([]Block, len(c.blocks), len(c.blocks)+1)
	copy(blocks, c.blocks)
	return Collection{blocks: append(blocks, added)}, added, true
}

// UpdateBlockContent replaces the content of the block with id. Unknown ids,
// nil content and content of a different kind leave the collection as is;
// changing a block's kind would bypass the media cap.
func (c Collection) UpdateBlockContent(id string, content Content) Collection {
	idx := c.Index(id)
	if idx < 0 || content == nil || content.Kind() != c.blocks[idx].Kind() {
		return c
	}
	blocks := c.Blocks()
	blocks[idx].Content = content
	return Collection{blocks: blocks}
}

// DeleteBlock removes the block with id. The last remaining block is never
// removed.
func (c Collection) DeleteBlock(id string) Collection {
	idx := c.Index(id)
	if idx < 0 || len(c.blocks) <= 1 {
		return c
	}
	blocks := make([]Block, 0, len(c.blocks)-1)
	blocks = append(blocks, c.blocks[:idx]...)
	blocks = append(blocks, c.blocks[idx+1:]...)
	return Collection{blocks: blocks}
}

// MoveBlock swaps the block with id and its neighbour in direction dir. Moves
// past either end and unknown directions are ignored.
func (c Collection) MoveBlock(id string, dir Direction) Collection {
	idx := c.Index(id)
	if idx < 0 {
		return c
	}
	var target int
	switch dir {
	case Up:
		target = idx - 1
	case Down:
		target = idx + 1
	default:
		return c
	}
	if target < 0 || target >= len(c.blocks) {
		return c
	}
	blocks := c.Blocks()
	blocks[idx], blocks[target] = blocks[target], blocks[idx]
	return Collection{blocks: blocks}
}
