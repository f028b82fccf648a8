package elements

import (
	"fmt"
	"strconv"
	"strings"

	"page_automation/domain/entities"
)

// FormatLocator substitutes identifiers into the %s slots of base, in order.
// A slot may name its identifier explicitly as %2$s, %n is a line break and
// %% a literal percent sign. Identifiers beyond the highest slot are ignored;
// fewer identifiers than slots is an error.
func FormatLocator(base string, identifiers []string) (string, error) {
	parts, slots, err := parseLocator(base)
	if err != nil {
		return "", &entities.InsufficientArgumentsError{Base: base, Identifiers: identifiers, Err: err}
	}

	if len(identifiers) < slots {
		return "", &entities.InsufficientArgumentsError{
			Base:        base,
			Identifiers: identifiers,
			Err:         fmt.Errorf("format specifier %d of %d has no argument", len(identifiers)+1, slots),
		}
	}

	var b strings.Builder
	for _, v := range parts {
		if v.arg < 0 {
			b.WriteString(v.text)
			continue
		}
		b.WriteString(strings.TrimSpace(identifiers[v.arg]))
	}
	return b.String(), nil
}

// JoinLocators prefixes own with the parent's effective locator. No separator is
// inserted, so fragments must concatenate correctly (e.g. an XPath axis step).
func JoinLocators(parent, own string) string {
	return parent + own
}

// TrimIdentifiers returns a copy of identifiers with surrounding whitespace removed
func TrimIdentifiers(identifiers []string) []string {
	trimmed := make([]string, len(identifiers))
	for i, id := range identifiers {
		trimmed[i] = strings.TrimSpace(id)
	}
	return trimmed
}

// locatorPart is literal text, or an identifier slot when arg is not negative
type locatorPart struct {
	text string
	arg  int
}

// parseLocator splits base into literal text and slots, returning how many
// identifiers the slots need. Any verb other than %s, %N$s, %n and %% is rejected.
func parseLocator(base string) ([]locatorPart, int, error) {
	var (
		parts   []locatorPart
		literal strings.Builder
		next    int
		needed  int
	)
	flush := func() {
		if literal.Len() > 0 {
			parts = append(parts, locatorPart{text: literal.String(), arg: -1})
			literal.Reset()
		}
	}

	for i := 0; i < len(base); i++ {
		if base[i] != '%' {
			literal.WriteByte(base[i])
			continue
		}
		if i+1 >= len(base) {
			return nil, 0, fmt.Errorf("dangling %% at offset %d", i)
		}

		switch c := base[i+1]; {
		case c == '%':
			literal.WriteByte('%')
			i++
		case c == 'n':
			literal.WriteByte('\n')
			i++
		case c == 's':
			flush()
			parts = append(parts, locatorPart{arg: next})
			next++
			needed = max(needed, next)
			i++
		case c >= '1' && c <= '9':
			j := i + 1
			for j < len(base) && base[j] >= '0' && base[j] <= '9' {
				j++
			}
			if j+1 >= len(base) || base[j] != '$' || base[j+1] != 's' {
				return nil, 0, fmt.Errorf("unsupported format verb at offset %d", i)
			}
			index, err := strconv.Atoi(base[i+1 : j])
			if err != nil {
				return nil, 0, fmt.Errorf("bad argument index at offset %d: %w", i, err)
			}
			flush()
			parts = append(parts, locatorPart{arg: index - 1})
			needed = max(needed, index)
			i = j + 1
		default:
			return nil, 0, fmt.Errorf("unsupported format verb %%%c at offset %d", c, i)
		}
	}
	flush()
	return parts, needed, nil
}
