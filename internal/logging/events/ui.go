package events

import "github.com/atomicstack/chapters/internal/logging"

type UITracer struct{}

type TabsTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Tabs    = TabsTracer{}
	Command = CommandTracer{}
)

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Chord(prefix, key string, matched bool) {
	logging.Trace("ui.chord", map[string]interface{}{"prefix": prefix, "key": key, "matched": matched})
}

func (UITracer) Toast(kind, text string) {
	logging.Trace("ui.toast", map[string]interface{}{"kind": kind, "text": text})
}

func (UITracer) Muse(action string, applicable bool) {
	logging.Trace("ui.muse", map[string]interface{}{"action": action, "applicable": applicable})
}

func (UITracer) Jump(query, target string) {
	logging.Trace("ui.jump", map[string]interface{}{"query": query, "target": target})
}

func (TabsTracer) Layout(width int, mode string, visible, overflow int) {
	logging.Trace("tabs.layout", map[string]interface{}{
		"width":    width,
		"mode":     mode,
		"visible":  visible,
		"overflow": overflow,
	})
}

func (TabsTracer) Select(id string, fromMenu bool) {
	logging.Trace("tabs.select", map[string]interface{}{"tab": id, "menu": fromMenu})
}

func (TabsTracer) Menu(state, reason string) {
	logging.Trace("tabs.menu", map[string]interface{}{"state": state, "reason": reason})
}

func (TabsTracer) Scroll(offset int, left, right bool) {
	logging.Trace("tabs.scroll", map[string]interface{}{"offset": offset, "left": left, "right": right})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
