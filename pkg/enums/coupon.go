package enums

import "fmt"

// CouponStatus represents the canonical coupon_status enum in Postgres.
type CouponStatus string

const (
	CouponStatusDraft  CouponStatus = "draft"
	CouponStatusActive CouponStatus = "active"
	CouponStatusPaused CouponStatus = "paused"
	CouponStatusEnded  CouponStatus = "ended"
)

var validCouponStatuses = []CouponStatus{
	CouponStatusDraft,
	CouponStatusActive,
	CouponStatusPaused,
	CouponStatusEnded,
}

// String implements fmt.Stringer.
func (s CouponStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CouponStatus.
func (s CouponStatus) IsValid() bool {
	for _, candidate := range validCouponStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCouponStatus converts raw input into a CouponStatus.
func ParseCouponStatus(value string) (CouponStatus, error) {
	for _, candidate := range validCouponStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid coupon status %q", value)
}

// IssuanceStatus tracks the lifecycle of one issued coupon instance.
type IssuanceStatus string

const (
	IssuanceStatusUnused    IssuanceStatus = "unused"
	IssuanceStatusActivated IssuanceStatus = "activated"
	IssuanceStatusUsed      IssuanceStatus = "used"
	IssuanceStatusExpired   IssuanceStatus = "expired"
)

var validIssuanceStatuses = []IssuanceStatus{
	IssuanceStatusUnused,
	IssuanceStatusActivated,
	IssuanceStatusUsed,
	IssuanceStatusExpired,
}

// String implements fmt.Stringer.
func (s IssuanceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known IssuanceStatus.
func (s IssuanceStatus) IsValid() bool {
	for _, candidate := range validIssuanceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s IssuanceStatus) IsTerminal() bool {
	return s == IssuanceStatusUsed || s == IssuanceStatusExpired
}

// ParseIssuanceStatus converts raw input into an IssuanceStatus.
func ParseIssuanceStatus(value string) (IssuanceStatus, error) {
	for _, candidate := range validIssuanceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issuance status %q", value)
}

// BenefitType describes what an issued coupon grants at redemption.
type BenefitType string

const (
	BenefitTypePercent BenefitType = "percent"
	BenefitTypeAmount  BenefitType = "amount"
	BenefitTypeGift    BenefitType = "gift"
)

var validBenefitTypes = []BenefitType{
	BenefitTypePercent,
	BenefitTypeAmount,
	BenefitTypeGift,
}

// String implements fmt.Stringer.
func (b BenefitType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BenefitType.
func (b BenefitType) IsValid() bool {
	for _, candidate := range validBenefitTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBenefitType converts raw input into a BenefitType.
func ParseBenefitType(value string) (BenefitType, error) {
	for _, candidate := range validBenefitTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid benefit type %q", value)
}
