package bloodbank

import (
	"errors"
	"fmt"
	"strings"
)

// BloodType is an ABO/Rh blood group such as "AB+".
type BloodType string

// Supported blood types.
const (
	APositive  BloodType = "A+"
	ANegative  BloodType = "A-"
	BPositive  BloodType = "B+"
	BNegative  BloodType = "B-"
	ABPositive BloodType = "AB+"
	ABNegative BloodType = "AB-"
	OPositive  BloodType = "O+"
	ONegative  BloodType = "O-"
)

// ErrUnknownBloodType is returned for a blood type outside the ABO/Rh groups.
var ErrUnknownBloodType = errors.New("unknown blood type")

// AllBloodTypes lists every supported type in a stable order.
var AllBloodTypes = []BloodType{
	APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative,
}

// donors maps a recipient to the types it can safely receive.
var donors = map[BloodType][]BloodType{
	ONegative:  {ONegative},
	OPositive:  {ONegative, OPositive},
	ANegative:  {ONegative, ANegative},
	APositive:  {ONegative, OPositive, ANegative, APositive},
	BNegative:  {ONegative, BNegative},
	BPositive:  {ONegative, OPositive, BNegative, BPositive},
	ABNegative: {ONegative, ANegative, BNegative, ABNegative},
	ABPositive: {ONegative, OPositive, ANegative, APositive, BNegative, BPositive, ABNegative, ABPositive},
}

// ParseBloodType parses a blood type case-insensitively, ignoring surrounding spaces.
func ParseBloodType(raw string) (BloodType, error) {
	bloodType := BloodType(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := donors[bloodType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBloodType, raw)
	}

	return bloodType, nil
}

// Donors returns the types a recipient can receive. Unknown types have no donors.
func Donors(recipient BloodType) []BloodType {
	return donors[recipient]
}

func (b BloodType) String() string {
	return string(b)
}
