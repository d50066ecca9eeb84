package composer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToPayloadShape(t *testing.T) {
	stubIDs(t)
	c := build(t, KindText, KindQuote, KindImage, KindAudio)
	c = c.UpdateBlockContent("b1", Text{Text: "hello"})
	c = c.UpdateBlockContent("b2", Quote{Text: "q"})
	c = c.UpdateBlockContent("b4", Audio{URL: "https://a"})
	c = c.MoveBlock("b3", Up)

	p := ToPayload("Between Silences", c, NewThemeSet(2, 5), "tender")
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"title":"Between Silences","blocks":[` +
		`{"block_type":"text","content":{"text":"hello"},"position":0},` +
		`{"block_type":"image","content":{"url":""},"position":1},` +
		`{"block_type":"quote","content":{"text":"q","source":""},"position":2},` +
		`{"block_type":"audio","content":{"url":"https://a"},"position":3}` +
		`],"themes":[2,5],"mood":"tender"}`
	if string(data) != want {
		t.Fatalf("unexpected payload\nwant %s\ngot  %s", want, data)
	}
}

func TestToPayloadEmptyThemesAndMood(t *testing.T) {
	p := ToPayload("", Seed(), ThemeSet{}, "")
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"themes":[]`) {
		t.Fatalf("expected empty themes array, got %s", data)
	}
	if strings.Contains(string(data), `"mood"`) {
		t.Fatalf("expected mood omitted, got %s", data)
	}
}

func TestBlockPayloadLegacyStringContent(t *testing.T) {
	var bp BlockPayload
	if err := json.Unmarshal([]byte(`{"block_type":"text","content":"old words","position":4}`), &bp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := BlockPayload{Kind: KindText, Content: Text{Text: "old words"}, Position: 4}
	if diff := cmp.Diff(want, bp); diff != "" {
		t.Fatalf("unexpected block (-want +got):\n%s", diff)
	}

	if err := json.Unmarshal([]byte(`{"block_type":"poll","content":{}}`), &bp); err == nil {
		t.Fatalf("expected unknown block type to fail")
	}
}

func TestDecodeContent(t *testing.T) {
	cases := []struct {
		kind Kind
		raw  string
		want Content
	}{
		{KindText, `null`, Text{}},
		{KindText, ``, Text{}},
		{KindQuote, `{"text":"a","source":"b"}`, Quote{Text: "a", Source: "b"}},
		{KindQuote, `"just text"`, Quote{Text: "just text"}},
		{KindImage, `{"url":"u","caption":"c"}`, Image{URL: "u", Caption: "c"}},
		{KindAudio, `{"url":"u","title":"t"}`, Audio{URL: "u", Title: "t"}},
		{KindVideo, `{}`, Video{}},
	}
	for _, tc := range cases {
		got, err := DecodeContent(tc.kind, json.RawMessage(tc.raw))
		if err != nil {
			t.Fatalf("%s %q: %v", tc.kind, tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s %q (-want +got):\n%s", tc.kind, tc.raw, diff)
		}
	}
	if _, err := DecodeContent(KindText, json.RawMessage(`[1]`)); err == nil {
		t.Fatalf("expected array content to fail")
	}
}

func TestPayloadCollectionOrdersByPosition(t *testing.T) {
	stubIDs(t)
	p := PublishPayload{
		Title: "t",
		Blocks: []BlockPayload{
			{Kind: KindQuote, Content: Quote{Text: "second"}, Position: 7},
			{Kind: KindText, Content: Text{Text: "first"}, Position: 2},
		},
	}
	c := p.Collection()
	got := ToPayload("t", c, ThemeSet{}, "")
	want := []BlockPayload{
		{Kind: KindText, Content: Text{Text: "first"}, Position: 0},
		{Kind: KindQuote, Content: Quote{Text: "second"}, Position: 1},
	}
	if diff := cmp.Diff(want, got.Blocks); diff != "" {
		t.Fatalf("unexpected blocks (-want +got):\n%s", diff)
	}
}

func TestPayloadValidate(t *testing.T) {
	ok := ToPayload("t", Seed(), NewThemeSet(1), "calm")
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := ok
	bad.Themes = []int{1, 2, 3, 4}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected theme count error")
	}
	bad = ok
	bad.Blocks = nil
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected empty block error")
	}
	bad = ok
	bad.Mood = strings.Repeat("x", MaxMoodLength+1)
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected mood length error")
	}
}
