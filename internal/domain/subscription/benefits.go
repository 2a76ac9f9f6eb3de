package subscription

import (
	"encoding/json"
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
)

// unlimitedMarker is the JSON value for an unlimited monthly benefit.
const unlimitedMarker = "unlimited"

// Benefit is a plan's monthly allowance for one content type: unlimited or a
// non-negative claim count. A content type absent from the map is not
// included in the plan at all.
type Benefit struct {
	unlimited bool
	limit     uint
}

// UnlimitedBenefit creates an unlimited benefit.
func UnlimitedBenefit() Benefit {
	return Benefit{unlimited: true}
}

// LimitedBenefit creates a benefit capped at n claims per calendar month.
func LimitedBenefit(n uint) Benefit {
	return Benefit{limit: n}
}

// IsUnlimited reports whether the benefit has no monthly cap.
func (b Benefit) IsUnlimited() bool {
	return b.unlimited
}

// Limit returns the monthly claim cap; zero for unlimited benefits.
func (b Benefit) Limit() uint {
	if b.unlimited {
		return 0
	}
	return b.limit
}

// MarshalJSON encodes the benefit as "unlimited" or an integer.
func (b Benefit) MarshalJSON() ([]byte, error) {
	if b.unlimited {
		return json.Marshal(unlimitedMarker)
	}
	return json.Marshal(b.limit)
}

// UnmarshalJSON decodes "unlimited" or a non-negative integer.
func (b *Benefit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != unlimitedMarker {
			return fmt.Errorf("%w: %q", ErrInvalidBenefit, s)
		}
		*b = UnlimitedBenefit()
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBenefit, string(data))
	}
	if n < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidBenefit, n)
	}
	*b = LimitedBenefit(uint(n))
	return nil
}

// BenefitMap maps content types to their monthly benefit. Types absent from
// the map are not included in the plan.
type BenefitMap map[catalog.ContentType]Benefit

// Benefit looks up the benefit for a content type.
func (m BenefitMap) Benefit(ct catalog.ContentType) (Benefit, bool) {
	b, ok := m[ct]
	return b, ok
}

// Includes reports whether the plan covers the content type at all.
func (m BenefitMap) Includes(ct catalog.ContentType) bool {
	_, ok := m[ct]
	return ok
}

// Clone returns an independent copy of the map.
func (m BenefitMap) Clone() BenefitMap {
	if m == nil {
		return nil
	}
	out := make(BenefitMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// UnmarshalJSON decodes the map, rejecting content types outside the closed
// enumeration so stale plan rows fail loudly instead of silently granting.
func (m *BenefitMap) UnmarshalJSON(data []byte) error {
	raw := map[string]Benefit{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(BenefitMap, len(raw))
	for key, benefit := range raw {
		ct, err := catalog.ParseContentType(key)
		if err != nil {
			return fmt.Errorf("benefit map: %w", err)
		}
		out[ct] = benefit
	}
	*m = out
	return nil
}
