package vizgen

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// ClassNameSuffix is appended to every derived class name.
	ClassNameSuffix = "Visualization"

	// ClassNamePrefix is prepended when the derived class name would start with a rune that
	// cannot start an identifier, such as a digit.
	ClassNamePrefix = "Viz"
)

// identifierPattern follows the ECMAScript IdentifierName grammar without escapes and
// the ZWJ/ZWNJ joiners.
var identifierPattern = regexp.MustCompile(`^[\p{L}\p{Nl}_$][\p{L}\p{Nl}\p{Nd}\p{Mn}\p{Mc}\p{Pc}_$]*$`)

var separatorRemover = strings.NewReplacer(" ", "", "-", "")

// ClassName derives the script class name for a concept. Spaces and hyphens are removed,
// then any other rune that cannot appear in an identifier is dropped and ClassNameSuffix
// is appended. If the result starts with a digit, ClassNamePrefix is prepended.
//
//	ClassName("Gravity")       // "GravityVisualization"
//	ClassName("3D Shapes")     // "Viz3DShapesVisualization"
//	ClassName("Newton's Laws") // "NewtonsLawsVisualization"
func ClassName(concept string) string {
	name := classNameBase(concept) + ClassNameSuffix

	if r, _ := utf8.DecodeRuneInString(name); !isIdentifierStart(r) {
		name = ClassNamePrefix + name
	}
	return name
}

func classNameBase(concept string) string {
	return strings.Map(func(r rune) rune {
		if isIdentifierPart(r) {
			return r
		}
		return -1
	}, separatorRemover.Replace(concept))
}

func isIdentifierStart(r rune) bool {
	return r == '$' || r == '_' || unicode.In(r, unicode.L, unicode.Nl)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.In(r, unicode.Nd, unicode.Mn, unicode.Mc, unicode.Pc)
}

// deriveClassName returns the class name for concept. A concept made only of runes that
// ClassName drops is rejected; spaces and hyphens alone still yield the bare suffix.
func deriveClassName(concept string) (string, error) {
	if classNameBase(concept) == "" && separatorRemover.Replace(concept) != "" {
		return "", goerr.Wrap(ErrInvalidConcept, "concept has no identifier characters", goerr.V("concept", concept))
	}

	name := ClassName(concept)
	if err := ValidateClassName(name); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateClassName checks that name can be used as a class name in the generated script
// and as a file name in the output directory.
func ValidateClassName(name string) error {
	if !identifierPattern.MatchString(name) {
		return goerr.Wrap(ErrInvalidConcept, "class name is not a valid identifier", goerr.V("class_name", name))
	}
	return nil
}
