package editor

import "wellconnect/entities"

// Field-entry events. Each one is a pure in-memory change to the draft; the
// saved snapshot and the store are untouched until Save.
type Event interface{ apply(w *entities.Well) }

type NameEntered struct{ Value string }
type OwnerEntered struct{ Value string }
type LocationEntered struct{ Value string }
type EspIDEntered struct{ Value string }
type IPAddressEntered struct{ Value string }
type StatusSelected struct{ Value string }
type WaterTypeSelected struct{ Value string }
type CapacityEntered struct{ Value string }
type WaterLevelEntered struct{ Value string }
type ConsumptionEntered struct{ Value string }

// ExtraSet writes one key in the open side-channel map. An empty value
// removes the key.
type ExtraSet struct{ Key, Value string }

func (e NameEntered) apply(w *entities.Well)        { w.Name = e.Value }
func (e OwnerEntered) apply(w *entities.Well)       { w.Owner = e.Value }
func (e LocationEntered) apply(w *entities.Well)    { w.Location = e.Value }
func (e EspIDEntered) apply(w *entities.Well)       { w.EspID = e.Value }
func (e IPAddressEntered) apply(w *entities.Well)   { w.IPAddress = e.Value }
func (e StatusSelected) apply(w *entities.Well)     { w.Status = e.Value }
func (e WaterTypeSelected) apply(w *entities.Well)  { w.WaterType = e.Value }
func (e CapacityEntered) apply(w *entities.Well)    { w.Capacity = e.Value }
func (e WaterLevelEntered) apply(w *entities.Well)  { w.WaterLevel = e.Value }
func (e ConsumptionEntered) apply(w *entities.Well) { w.Consumption = e.Value }

func (e ExtraSet) apply(w *entities.Well) {
	if e.Value == "" {
		delete(w.Extra, e.Key)
		return
	}
	if w.Extra == nil {
		w.Extra = map[string]string{}
	}
	w.Extra[e.Key] = e.Value
}
