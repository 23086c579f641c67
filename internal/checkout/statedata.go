package checkout

import (
	"sort"

	"github.com/ntzrbtr/adyen-shopware6/internal/domain"
)

// StateData is the client-supplied payment payload after validation. Only
// recognized, correctly-typed root fields survive; everything else is stripped.
type StateData map[string]any

// kind of value expected under each recognized root key
type fieldKind int

const (
	kindObject fieldKind = iota
	kindString
	kindBool
)

var stateDataRootKeys = map[string]fieldKind{
	"paymentMethod":        kindObject,
	"billingAddress":       kindObject,
	"deliveryAddress":      kindObject,
	"riskData":             kindObject,
	"browserInfo":          kindObject,
	"shopperName":          kindObject,
	"installments":         kindObject,
	"details":              kindObject,
	"dateOfBirth":          kindString,
	"telephoneNumber":      kindString,
	"shopperEmail":         kindString,
	"countryCode":          kindString,
	"socialSecurityNumber": kindString,
	"conversionId":         kindString,
	"paymentData":          kindString,
	"channel":              kindString,
	"origin":               kindString,
	"returnUrl":            kindString,
	"storePaymentMethod":   kindBool,
}

// ValidateStateData filters a raw decoded payload down to the recognized root
// keys. Unknown keys are dropped silently; recognized keys of the wrong type
// fail validation, enumerating every offending field. Empty input is valid:
// whether state data may be empty at all is the caller's precondition.
func ValidateStateData(raw map[string]any) (StateData, error) {
	validated := StateData{}
	var invalid []string

	for key, value := range raw {
		kind, ok := stateDataRootKeys[key]
		if !ok {
			continue
		}
		if !matchesKind(value, kind) {
			invalid = append(invalid, key)
			continue
		}
		validated[key] = value
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, domain.NewValidationError(invalid)
	}

	return validated, nil
}

func matchesKind(value any, kind fieldKind) bool {
	switch kind {
	case kindObject:
		_, ok := value.(map[string]any)
		return ok
	case kindString:
		_, ok := value.(string)
		return ok
	case kindBool:
		_, ok := value.(bool)
		return ok
	}
	return false
}

// Details returns the verification-details mapping, or nil when absent.
func (s StateData) Details() map[string]any {
	details, _ := s["details"].(map[string]any)
	return details
}

// PaymentData returns the provider's opaque payment-data blob, if present.
func (s StateData) PaymentData() string {
	data, _ := s["paymentData"].(string)
	return data
}
