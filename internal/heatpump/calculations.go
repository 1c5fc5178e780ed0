package heatpump

// calculationTable maps the well-known computed/measured value indices.
var calculationTable = map[int]entry{
	10:  {Name: "ID_WEB_Temperatur_TVL", Unit: UnitCelsius},      // flow temperature
	11:  {Name: "ID_WEB_Temperatur_TRL", Unit: UnitCelsius},      // return temperature
	12:  {Name: "ID_WEB_Sollwert_TRL_HZ", Unit: UnitCelsius},     // return target
	13:  {Name: "ID_WEB_Temperatur_TRL_ext", Unit: UnitCelsius},  // external return sensor
	14:  {Name: "ID_WEB_Temperatur_THG", Unit: UnitCelsius},      // hot gas
	15:  {Name: "ID_WEB_Temperatur_TA", Unit: UnitCelsius},       // outside
	16:  {Name: "ID_WEB_Mitteltemperatur", Unit: UnitCelsius},    // averaged outside
	17:  {Name: "ID_WEB_Temperatur_TBW", Unit: UnitCelsius},      // hot water
	19:  {Name: "ID_WEB_Temperatur_TWE", Unit: UnitCelsius},      // heat source inlet
	20:  {Name: "ID_WEB_Temperatur_TWA", Unit: UnitCelsius},      // heat source outlet
	56:  {Name: "ID_WEB_Zaehler_BetrZeitWP", Unit: UnitHours},    // compressor runtime
	80:  {Name: "ID_WEB_WP_BZ_akt", Unit: UnitEnum},              // operating mode
	151: {Name: "ID_WEB_WMZ_Heizung", Unit: UnitKW},              // heating energy
	257: {Name: "ID_WEB_Heistung_Ist", Unit: UnitKW},             // current heat output
	231: {Name: "ID_WEB_Freq_VD", Unit: UnitNone},                // compressor frequency
}

// Calculations is the sink for the computed/measured value vector.
type Calculations struct {
	values []int32
}

// NewCalculations creates an empty calculation sink.
func NewCalculations() *Calculations {
	return &Calculations{}
}

// Parse stores the raw calculation vector from one read phase. The slice is
// copied; the caller may reuse it.
func (c *Calculations) Parse(raw []int32) {
	c.values = append(c.values[:0], raw...)
}

// Len returns the number of calculations received in the last read phase.
func (c *Calculations) Len() int {
	return len(c.values)
}

// Get returns the decoded value at index, or false if the last read phase
// delivered fewer values.
func (c *Calculations) Get(index int) (Value, bool) {
	if index < 0 || index >= len(c.values) {
		return Value{}, false
	}
	return makeValue(index, c.values[index], calculationTable, "Unknown_Calculation"), true
}

// All returns every received calculation in index order.
func (c *Calculations) All() []Value {
	out := make([]Value, len(c.values))
	for i, raw := range c.values {
		out[i] = makeValue(i, raw, calculationTable, "Unknown_Calculation")
	}
	return out
}
