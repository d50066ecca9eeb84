// Package composer holds the ordered block collection behind a chapter draft
// and the payload it serialises to. Every structural edit returns a new
// collection; requests that would break a bound are ignored rather than
// reported.
package composer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind names a block variant. The string form is the wire block_type.
type Kind string

const (
	KindText  Kind = "text"
	KindQuote Kind = "quote"
	KindImage Kind = "image"
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// Kinds lists every block kind in menu order.
var Kinds = []Kind{KindText, KindQuote, KindImage, KindAudio, KindVideo}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindQuote, KindImage, KindAudio, KindVideo:
		return true
	}
	return false
}

// IsMedia reports whether blocks of this kind count against MaxMediaBlocks.
func (k Kind) IsMedia() bool {
	return k == KindImage || k == KindAudio || k == KindVideo
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind maps a block_type string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown block type %q", s)
	}
	return k, nil
}

// Content is the closed set of block payloads. The unexported method keeps
// the set closed to this package.
type Content interface {
	Kind() Kind
	// Primary is the field that decides whether the block is blank.
	Primary() string
	content()
}

type Text struct {
	Text string `json:"text"`
}

type Quote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type Audio struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type Video struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

func (Text) Kind() Kind  { return KindText }
func (Quote) Kind() Kind { return KindQuote }
func (Image) Kind() Kind { return KindImage }
func (Audio) Kind() Kind { return KindAudio }
func (Video) Kind() Kind { return KindVideo }

func (c Text) Primary() string  { return c.Text }
func (c Quote) Primary() string { return c.Text }
func (c Image) Primary() string { return c.URL }
func (c Audio) Primary() string { return c.URL }
func (c Video) Primary() string { return c.URL }

func (Text) content()  {}
func (Quote) content() {}
func (Image) content() {}
func (Audio) content() {}
func (Video) content() {}

// EmptyContent returns the seed content for a new block of kind k.
func EmptyContent(k Kind) Content {
	switch k {
	case KindQuote:
		return Quote{}
	case KindImage:
		return Image{}
	case KindAudio:
		return Audio{}
	case KindVideo:
		return Video{}
	default:
		return Text{}
	}
}

// IsBlank reports whether c has nothing but whitespace in its primary field.
func IsBlank(c Content) bool {
	if c == nil {
		return true
	}
	return strings.TrimSpace(c.Primary()) == ""
}

// DecodeContent parses stored or wire content for a block of kind k. A bare
// JSON string is the legacy encoding and fills the primary field; null or an
// empty message yields the kind's empty content.
func DecodeContent(k Kind, raw json.RawMessage) (Content, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown block type %q", string(k))
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return EmptyContent(k), nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", k, err)
		}
		return withPrimary(k, s), nil
	}

	var (
		out Content
		err error
	)
	switch k {
	case KindText:
		var c Text
		err = json.Unmarshal(trimmed, &c)
		out = c
	case KindQuote:
		var c Quote
		err = json.Unmarshal(trimmed, &c)
		out = c
	case KindImage:
		var c Image
		err = json.Unmarshal(trimmed, &c)
		out = c
	case KindAudio:
		var c Audio
		err = json.Unmarshal(trimmed, &c)
		out = c
	case KindVideo:
		var c Video
		err = json.Unmarshal(trimmed, &c)
		out = c
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s content: %w", k, err)
	}
	return out, nil
}

func withPrimary(k Kind, s string) Content {
	switch k {
	case KindQuote:
		return Quote{Text: s}
	case KindImage:
		return Image{URL: s}
	case KindAudio:
		return Audio{URL: s}
	case KindVideo:
		return Video{URL: s}
	default:
		return Text{Text: s}
	}
}
