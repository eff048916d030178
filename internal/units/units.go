// Package units provides the small set of physical quantity types the
// thermal models and CLI output work in. They are plain float64 wrappers
// with conversions and display formatting, not an arithmetic framework.
package units

import "fmt"

// Celsius is a temperature on the Celsius scale.
type Celsius float64

// Kelvin is an absolute temperature.
type Kelvin float64

func (c Celsius) Kelvin() Kelvin  { return Kelvin(float64(c) + 273.15) }
func (k Kelvin) Celsius() Celsius { return Celsius(float64(k) - 273.15) }

func (c Celsius) String() string { return fmt.Sprintf("%.2f C", float64(c)) }
func (k Kelvin) String() string  { return fmt.Sprintf("%.2f K", float64(k)) }

// Watts is a power.
type Watts float64

// Kilowatts is a power in SI kilo form.
type Kilowatts float64

func (w Watts) Kilowatts() Kilowatts { return Kilowatts(float64(w) / 1000) }
func (kw Kilowatts) Watts() Watts    { return Watts(float64(kw) * 1000) }

func (w Watts) String() string      { return fmt.Sprintf("%.0f W", float64(w)) }
func (kw Kilowatts) String() string { return fmt.Sprintf("%.2f kW", float64(kw)) }

// Kilograms is a mass.
type Kilograms float64

func (kg Kilograms) String() string { return fmt.Sprintf("%.2f kg", float64(kg)) }

// Ratio is a dimensionless fraction; String renders it as a percentage.
type Ratio float64

func (r Ratio) Percent() float64 { return float64(r) * 100 }

func (r Ratio) String() string { return fmt.Sprintf("%.1f%%", r.Percent()) }
