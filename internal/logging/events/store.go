package events

import "github.com/atomicstack/chapters/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Open(path string) {
	logging.Trace("store.open", map[string]interface{}{"path": path})
}

func (StoreTracer) Create(id int64) {
	logging.Trace("store.create", map[string]interface{}{"draft": id})
}

func (StoreTracer) Load(id int64, blocks int) {
	logging.Trace("store.load", map[string]interface{}{"draft": id, "blocks": blocks})
}

func (StoreTracer) Delete(id int64) {
	logging.Trace("store.delete", map[string]interface{}{"draft": id})
}

func (StoreTracer) Save(id int64, manual bool, err error) {
	payload := map[string]interface{}{"draft": id, "manual": manual}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("store.save", payload)
}

func (StoreTracer) Publish(id int64, err error) {
	payload := map[string]interface{}{"draft": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("store.publish", payload)
}

func (StoreTracer) Coalesce(id int64, pending int) {
	logging.Trace("store.coalesce", map[string]interface{}{"draft": id, "pending": pending})
}
