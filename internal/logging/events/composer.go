package events

import "github.com/atomicstack/chapters/internal/logging"

type ComposerTracer struct{}

var Composer = ComposerTracer{}

func (ComposerTracer) Add(kind, id string, accepted bool, blocks int) {
	logging.Trace("composer.add", map[string]interface{}{
		"kind":     kind,
		"block":    id,
		"accepted": accepted,
		"blocks":   blocks,
	})
}

func (ComposerTracer) Update(id, kind string) {
	logging.Trace("composer.update", map[string]interface{}{"block": id, "kind": kind})
}

func (ComposerTracer) Delete(id string, blocks int) {
	logging.Trace("composer.delete", map[string]interface{}{"block": id, "blocks": blocks})
}

func (ComposerTracer) Move(id, direction string, index int) {
	logging.Trace("composer.move", map[string]interface{}{"block": id, "direction": direction, "index": index})
}

func (ComposerTracer) EditCancel(id string) {
	logging.Trace("composer.edit.cancel", map[string]interface{}{"block": id})
}
