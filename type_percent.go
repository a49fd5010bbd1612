package patrimony

import (
	"encoding/json"
	"fmt"
	"math"
)

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// MarshalJSON writes the percentage rounded to 2 decimals.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(math.Round(float64(p)*100) / 100)
}

// returnOn returns (end - base) / base in percent, or 0 when base is zero or
// negative: a non positive base is a period with no data.
func returnOn(end, base Money) Percent {
	if !base.IsPositive() {
		return 0
	}
	return Percent(end.Sub(base).Ratio(base).Shift(2).InexactFloat64())
}

// share returns part / total in percent, 0 when total is not positive.
func share(part, total Money) Percent {
	if !total.IsPositive() {
		return 0
	}
	return Percent(part.Ratio(total).Shift(2).InexactFloat64())
}
