package student

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Class codes accepted by the registry.
const (
	ClassNursery = "nursery"
	ClassLKG     = "lkg"
	ClassUKG     = "ukg"
)

// Code types reported by ParseCode.
const (
	TypePrePrimary = "pre-primary"
	TypeGrade      = "grade"
)

const maxRoll = 999

var (
	ErrInvalidClass = errors.New("invalid class code")
	ErrInvalidRoll  = fmt.Errorf("roll number must be between 1 and %d", maxRoll)
	ErrInvalidCode  = errors.New("unrecognized student code")

	prePrimaryLetters = map[string]string{
		ClassNursery: "N",
		ClassLKG:     "L",
		ClassUKG:     "U",
	}
	prePrimaryClasses = map[string]string{
		"N": ClassNursery,
		"L": ClassLKG,
		"U": ClassUKG,
	}

	// the four known code shapes: N/L/U pre-primary plus graded
	prePrimaryRegex = regexp.MustCompile(`^([A-Z]{2,4}\d{2})([NLU])(\d{3})$`)
	gradeRegex      = regexp.MustCompile(`^([A-Z]{2,4}\d{2})-(\d{2})-([1-9]\d{0,2})$`)
)

// CodeInfo is the decoded form of a student code.
type CodeInfo struct {
	ClassCode string `json:"classCode"`
	Roll      string `json:"rollNumber"`
	Type      string `json:"type"`
}

// NormalizeClass maps any accepted spelling of a class ("Nursery",
// "05", "5") onto its canonical code.
func NormalizeClass(class string) (string, error) {
	class = strings.ToLower(strings.TrimSpace(class))
	switch class {
	case ClassNursery, ClassLKG, ClassUKG:
		return class, nil
	}
	n, err := strconv.Atoi(class)
	if err != nil || n < 1 || n > 10 {
		return "", ErrInvalidClass
	}
	return strconv.Itoa(n), nil
}

// GenerateCode builds the canonical student code for a class and roll:
// pre-primary classes get the prefix, a class letter and a zero-padded
// roll (CB25N007); grades 1-10 get PREFIX-CC-R (CB25-05-12).
func GenerateCode(prefix, class, roll string) (string, error) {
	class, err := NormalizeClass(class)
	if err != nil {
		return "", err
	}
	r, err := strconv.Atoi(strings.TrimSpace(roll))
	if err != nil || r < 1 || r > maxRoll {
		return "", ErrInvalidRoll
	}

	if letter, ok := prePrimaryLetters[class]; ok {
		return fmt.Sprintf("%s%s%03d", prefix, letter, r), nil
	}
	n, _ := strconv.Atoi(class)
	return fmt.Sprintf("%s-%02d-%d", prefix, n, r), nil
}

// ParseCode is the inverse of GenerateCode. Callers treat the error as
// a validation failure, never a fault.
func ParseCode(code string) (CodeInfo, error) {
	code = strings.TrimSpace(code)

	if m := prePrimaryRegex.FindStringSubmatch(code); m != nil {
		roll, _ := strconv.Atoi(m[3])
		if roll < 1 {
			return CodeInfo{}, ErrInvalidCode
		}
		return CodeInfo{
			ClassCode: prePrimaryClasses[m[2]],
			Roll:      strconv.Itoa(roll),
			Type:      TypePrePrimary,
		}, nil
	}

	if m := gradeRegex.FindStringSubmatch(code); m != nil {
		class, _ := strconv.Atoi(m[2])
		if class < 1 || class > 10 {
			return CodeInfo{}, ErrInvalidCode
		}
		return CodeInfo{
			ClassCode: strconv.Itoa(class),
			Roll:      m[3],
			Type:      TypeGrade,
		}, nil
	}

	return CodeInfo{}, ErrInvalidCode
}
