package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meltemk/skyticket/internal/domain"
)

// fieldValidator applies the form-level format rules: government id
// exactly 11 digits, phone 10 digits after stripping separators, card
// number 16 digits, cvc 3 digits, expiry MMYY with a live month.
type fieldValidator struct {
	v *validator.Validate
}

func newFieldValidator() *fieldValidator {
	v := validator.New()
	// digitstring=N: exactly N ASCII digits, nothing else.
	_ = v.RegisterValidation("digitstring", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		s := fl.Field().String()
		if len(s) != n {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return &fieldValidator{v: v}
}

func (f *fieldValidator) passenger(index int, p domain.Passenger, verr *domain.ValidationError) {
	field := func(name string) string {
		return fmt.Sprintf("passengers[%d].%s", index, name)
	}

	if f.v.Var(p.GovernmentID, "required,digitstring=11") != nil {
		verr.Add(field("tc"))
	}
	if f.v.Var(p.Name, "required") != nil {
		verr.Add(field("name"))
	}
	if f.v.Var(p.Surname, "required") != nil {
		verr.Add(field("surname"))
	}
	if f.v.Var(p.Nationality, "required") != nil {
		verr.Add(field("nationality"))
	}

	if p.IsChild {
		if p.ParentInfo == nil {
			verr.Add(field("parentInfo"))
			return
		}
		if f.v.Var(p.ParentInfo.Name, "required") != nil {
			verr.Add(field("parentInfo.name"))
		}
		if f.v.Var(p.ParentInfo.Surname, "required") != nil {
			verr.Add(field("parentInfo.surname"))
		}
		if f.v.Var(p.ParentInfo.Email, "required,email") != nil {
			verr.Add(field("parentInfo.email"))
		}
		if f.v.Var(stripNonDigits(p.ParentInfo.Phone), "digitstring=10") != nil {
			verr.Add(field("parentInfo.phone"))
		}
		return
	}

	if f.v.Var(p.Email, "required,email") != nil {
		verr.Add(field("email"))
	}
	if f.v.Var(stripNonDigits(p.Phone), "digitstring=10") != nil {
		verr.Add(field("phone"))
	}
}

func (f *fieldValidator) card(card CardDetails, now time.Time) *domain.ValidationError {
	verr := &domain.ValidationError{}

	if f.v.Var(stripNonDigits(card.CardNumber), "digitstring=16") != nil {
		verr.Add("cardNumber")
	}
	if f.v.Var(card.CardName, "required") != nil {
		verr.Add("cardName")
	}
	if f.v.Var(stripNonDigits(card.CVC), "digitstring=3") != nil {
		verr.Add("cvc")
	}
	if !expiryValid(card.Expiry, now) {
		verr.Add("expiry")
	}
	return verr
}

// expiryValid accepts MMYY with month 1-12 that is not already in the
// past; the current month is still valid.
func expiryValid(expiry string, now time.Time) bool {
	digits := stripNonDigits(expiry)
	if len(digits) != 4 {
		return false
	}
	month, err := strconv.Atoi(digits[:2])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(digits[2:])
	if err != nil {
		return false
	}
	year += 2000

	if year > now.Year() {
		return true
	}
	if year < now.Year() {
		return false
	}
	return month >= int(now.Month())
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
