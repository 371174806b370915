package gen

import (
	"fmt"
	mathrand "math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fakerFullName generates a realistic "First Last" name.
func fakerFullName() string {
	return fakerFirstNames[mathrand.IntN(len(fakerFirstNames))] + " " +
		fakerLastNames[mathrand.IntN(len(fakerLastNames))]
}

// fakerEmail generates a syntactically valid address on a reserved domain.
func fakerEmail() string {
	user := strings.ToLower(fakerFirstNames[mathrand.IntN(len(fakerFirstNames))])
	return user + strconv.Itoa(mathrand.IntN(1000)) + "@" +
		fakerEmailDomains[mathrand.IntN(len(fakerEmailDomains))]
}

// fakerPassword generates a length-12 string with at least one character
// from each class.
func fakerPassword() string {
	classes := []string{
		fakerPasswordLower,
		fakerPasswordUpper,
		fakerPasswordDigits,
		fakerPasswordSpecial,
	}
	all := strings.Join(classes, "")

	out := make([]byte, 12)
	for i, class := range classes {
		out[i] = class[mathrand.IntN(len(class))]
	}
	for i := len(classes); i < len(out); i++ {
		out[i] = all[mathrand.IntN(len(all))]
	}
	mathrand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return string(out)
}

// fakerInteger generates a random non-negative integer as a decimal string.
func fakerInteger() string {
	return strconv.Itoa(mathrand.IntN(10000))
}

// fakerDate generates a calendar date within the last 30 years.
func fakerDate() string {
	days := mathrand.IntN(30 * 365)
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

func fakerUUID() string {
	return uuid.New().String()
}

// negativeName draws uniformly among an empty string, a pattern-breaking
// string, and an overlong string.
func negativeName() string {
	alts := []string{"", "Name123", strings.Repeat("A", 201)}
	return alts[mathrand.IntN(len(alts))]
}

func negativeEmail() string {
	return "not-an-email"
}

func negativePassword() string {
	return "123"
}

// negativeInteger draws uniformly among a negative sentinel, a non-integral
// number, and a non-numeric string.
func negativeInteger() string {
	alts := []string{"-1", "999.9", "abc"}
	return alts[mathrand.IntN(len(alts))]
}

func negativeDate() string {
	return "2025-99-99"
}

func negativeUUID() string {
	return "not-a-uuid"
}

// Sentinel is the value substituted when no generator exists for a
// type/case pair, so generation never aborts on an unknown field type.
func Sentinel(typeName string, kase Case) string {
	return fmt.Sprintf("NO_GENERATOR_FOR_%s_%s", typeName, kase)
}
