package heatpump

import (
	"fmt"
	"sort"
)

// parameterTable maps the well-known operating parameter indices. The
// controller exposes hundreds; only the ones this tool reads or writes are
// named here. Writeable marks parameters the controller accepts writes for,
// Safe marks the subset considered harmless to change remotely.
var parameterTable = map[int]entry{
	1:   {Name: "ID_Einst_WK_akt", Unit: UnitCelsius, Writeable: true, Safe: true},      // heating curve offset
	2:   {Name: "ID_Einst_BWS_akt", Unit: UnitCelsius, Writeable: true, Safe: true},     // hot water target
	3:   {Name: "ID_Ba_Hz_akt", Unit: UnitEnum, Writeable: true, Safe: true},            // heating mode
	4:   {Name: "ID_Ba_Bw_akt", Unit: UnitEnum, Writeable: true, Safe: true},            // hot water mode
	11:  {Name: "ID_Einst_HzHwMAt_akt", Unit: UnitCelsius, Writeable: true, Safe: true}, // heating limit
	17:  {Name: "ID_Einst_HzHKRANH_akt", Unit: UnitKelvin, Writeable: true},
	47:  {Name: "ID_Einst_KuCft1_akt", Unit: UnitCelsius, Writeable: true},
	105: {Name: "ID_Soll_BWS_akt", Unit: UnitCelsius, Writeable: true, Safe: true},
	108: {Name: "ID_Einst_BWstufen_akt", Unit: UnitEnum, Writeable: true},
	699: {Name: "ID_Einst_Kuhl_Zeit_Ein_akt", Unit: UnitHours, Writeable: true},
	850: {Name: "ID_Einst_Solar_akt", Unit: UnitBool},
	860: {Name: "ID_Einst_Effizienzpumpe_akt", Unit: UnitBool, Writeable: true},
}

// Parameters is the operating-parameter sink and the owner of the pending
// write queue. Safe mode (the default) refuses to queue writes for
// parameters not whitelisted as safe.
type Parameters struct {
	safe   bool
	queue  WriteQueue
	values []int32
}

// NewParameters creates a parameter sink. With safe set, Queue rejects
// writes to parameters that are not known to be safe to change.
func NewParameters(safe bool) *Parameters {
	return &Parameters{safe: safe}
}

// Parse stores the raw parameter vector from one read phase. The slice is
// copied; the caller may reuse it.
func (p *Parameters) Parse(raw []int32) {
	p.values = append(p.values[:0], raw...)
}

// Len returns the number of parameters received in the last read phase.
func (p *Parameters) Len() int {
	return len(p.values)
}

// Get returns the decoded value at index, or false if the last read phase
// delivered fewer values.
func (p *Parameters) Get(index int) (Value, bool) {
	if index < 0 || index >= len(p.values) {
		return Value{}, false
	}
	return makeValue(index, p.values[index], parameterTable, "Unknown_Parameter"), true
}

// All returns every received parameter in index order.
func (p *Parameters) All() []Value {
	out := make([]Value, len(p.values))
	for i, raw := range p.values {
		out[i] = makeValue(i, raw, parameterTable, "Unknown_Parameter")
	}
	return out
}

// IndexOf resolves a well-known parameter name to its index.
func IndexOf(name string) (int, bool) {
	for index, e := range parameterTable {
		if e.Name == name {
			return index, true
		}
	}
	return 0, false
}

// KnownParameters returns the named parameter indices in ascending order,
// for display and shell completion.
func KnownParameters() []Value {
	indices := make([]int, 0, len(parameterTable))
	for index := range parameterTable {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	out := make([]Value, len(indices))
	for i, index := range indices {
		e := parameterTable[index]
		out[i] = Value{Index: index, Name: e.Name, Unit: e.Unit}
	}
	return out
}

// Queue adds a pending write for the parameter at index. In safe mode only
// parameters whitelisted as safe are accepted; otherwise any parameter known
// to be writeable is. Unknown indices are always rejected, since writing a
// parameter whose meaning is unknown risks misconfiguring the heat pump.
func (p *Parameters) Queue(index, value int) error {
	e, known := parameterTable[index]
	if !known {
		return fmt.Errorf("parameter %d is unknown and cannot be written", index)
	}
	if !e.Writeable {
		return fmt.Errorf("parameter %d (%s) is read-only", index, e.Name)
	}
	if p.safe && !e.Safe {
		return fmt.Errorf("parameter %d (%s) is not safe to write (safe mode is on)", index, e.Name)
	}
	p.queue.Set(index, value)
	return nil
}

// PendingWrites returns the queued writes in flush order. The session drains
// this during the write phase.
func (p *Parameters) PendingWrites() []WriteEntry {
	return p.queue.Snapshot()
}

// ClearPending discards the write queue. Called by the session after every
// write phase regardless of per-entry outcome.
func (p *Parameters) ClearPending() {
	p.queue.Clear()
}

func makeValue(index int, raw int32, table map[int]entry, unknownPrefix string) Value {
	e, ok := table[index]
	if !ok {
		e = entry{Name: fmt.Sprintf("%s_%d", unknownPrefix, index)}
	}
	return Value{
		Index:  index,
		Name:   e.Name,
		Raw:    raw,
		Scaled: e.Unit.scale(raw),
		Unit:   e.Unit,
	}
}
