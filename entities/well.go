package entities

import (
	"strconv"
	"strings"
	"time"
)

// Well status values. The set is open: records synced from the server may
// carry values outside this list and are kept as-is.
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
	StatusStandby     = "standby"
	StatusUnknown     = "unknown"
)

type Well struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	EspID string `json:"esp_id" gorm:"index"`

	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Location  string `json:"location"`   // "lat,lon" or free text
	WaterType string `json:"water_type"` // ground|surface|rain|desalinated
	Status    string `json:"status"`     // active|inactive|maintenance|standby|unknown

	// Measurements are kept as entered; empty or unparsable values are
	// tolerated and only interpreted when a ratio is needed.
	Capacity    string `json:"capacity"`
	WaterLevel  string `json:"water_level"`
	Consumption string `json:"consumption"`

	LastRefreshTime time.Time `json:"last_refresh_time"`
	IPAddress       string    `json:"ip_address"`

	// Extra holds fields the server sent that this build does not know
	// about. They are carried through edits and re-sent verbatim.
	Extra map[string]string `json:"extra,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Savable reports whether the record carries enough content to be worth
// persisting. A record with no name and no way to reach a device is an
// abandoned draft.
func (w Well) Savable() bool {
	return strings.TrimSpace(w.Name) != "" ||
		strings.TrimSpace(w.IPAddress) != "" ||
		strings.TrimSpace(w.EspID) != ""
}

// FillRatio returns water level / capacity clamped to [0,1]. Unparsable or
// non-positive capacity yields 0.
func (w Well) FillRatio() float64 {
	cap, err := strconv.ParseFloat(strings.TrimSpace(w.Capacity), 64)
	if err != nil || cap <= 0 {
		return 0
	}
	lvl, err := strconv.ParseFloat(strings.TrimSpace(w.WaterLevel), 64)
	if err != nil || lvl < 0 {
		return 0
	}
	r := lvl / cap
	if r > 1 {
		return 1
	}
	return r
}

// Equal compares all user-visible fields, including the extra map. Bookkeeping
// timestamps (CreatedAt/UpdatedAt) are ignored; LastRefreshTime is not, since
// a refresh produces a genuinely different record.
func (w Well) Equal(o Well) bool {
	if w.ID != o.ID || w.EspID != o.EspID ||
		w.Name != o.Name || w.Owner != o.Owner || w.Location != o.Location ||
		w.WaterType != o.WaterType || w.Status != o.Status ||
		w.Capacity != o.Capacity || w.WaterLevel != o.WaterLevel || w.Consumption != o.Consumption ||
		!w.LastRefreshTime.Equal(o.LastRefreshTime) || w.IPAddress != o.IPAddress {
		return false
	}
	if len(w.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range w.Extra {
		if ov, ok := o.Extra[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. Draft and snapshot must never share the extra
// map, or an in-place edit would leak into the snapshot.
func (w Well) Clone() Well {
	cp := w
	if w.Extra != nil {
		cp.Extra = make(map[string]string, len(w.Extra))
		for k, v := range w.Extra {
			cp.Extra[k] = v
		}
	}
	return cp
}
