package elements

import (
	"errors"
	"testing"

	"page_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLocator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		base        string
		identifiers []string
		expected    string
	}{
		{name: "no slots", base: "//div", expected: "//div"},
		{name: "single slot", base: "//a[text()='%s']", identifiers: []string{"Next"}, expected: "//a[text()='Next']"},
		{name: "two slots in order", base: "//tr[%s]/td[%s]", identifiers: []string{"2", "3"}, expected: "//tr[2]/td[3]"},
		{name: "identifiers are trimmed", base: "//a[text()='%s']", identifiers: []string{"  Next \t"}, expected: "//a[text()='Next']"},
		{name: "extra identifiers ignored", base: "//a[text()='%s']", identifiers: []string{"A", "B", "C"}, expected: "//a[text()='A']"},
		{name: "literal percent", base: "//td[contains(.,'100%%') and @id='%s']", identifiers: []string{"x"}, expected: "//td[contains(.,'100%') and @id='x']"},
		{name: "no slots ignores identifiers", base: "//div", identifiers: []string{"unused"}, expected: "//div"},
		{name: "explicit indexes", base: "//tr[td='%2$s']/td[text()='%1$s']", identifiers: []string{"Name", "42"}, expected: "//tr[td='42']/td[text()='Name']"},
		{name: "explicit index reused", base: "//a[@title='%1$s' or text()='%1$s']", identifiers: []string{"Home"}, expected: "//a[@title='Home' or text()='Home']"},
		{name: "explicit and ordinary slots", base: "//tr[%s]/td[%s]/span[@id='%1$s']", identifiers: []string{"2", "3"}, expected: "//tr[2]/td[3]/span[@id='2']"},
		{name: "line break", base: "%s%n//b", identifiers: []string{"//a"}, expected: "//a\n//b"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := FormatLocator(tc.base, tc.identifiers)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatLocatorInsufficient(t *testing.T) {
	t.Parallel()

	t.Run("too few identifiers", func(t *testing.T) {
		t.Parallel()
		_, err := FormatLocator("//tr[%s]/td[%s]", []string{"1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInsufficientArguments)

		var argErr *entities.InsufficientArgumentsError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, "//tr[%s]/td[%s]", argErr.Base)
		assert.Equal(t, []string{"1"}, argErr.Identifiers)
		assert.Contains(t, err.Error(), "//tr[%s]/td[%s]")
	})

	t.Run("no identifiers", func(t *testing.T) {
		t.Parallel()
		_, err := FormatLocator("//a[text()='%s']", nil)
		assert.ErrorIs(t, err, entities.ErrInsufficientArguments)
	})

	t.Run("unsupported verb", func(t *testing.T) {
		t.Parallel()
		_, err := FormatLocator("//tr[%d]", []string{"1"})
		assert.ErrorIs(t, err, entities.ErrInsufficientArguments)
	})

	t.Run("explicit index beyond identifiers", func(t *testing.T) {
		t.Parallel()
		_, err := FormatLocator("//tr[%1$s]/td[%3$s]", []string{"1", "2"})
		assert.ErrorIs(t, err, entities.ErrInsufficientArguments)
	})

	t.Run("explicit index needs a string verb", func(t *testing.T) {
		t.Parallel()
		_, err := FormatLocator("//tr[%1$d]", []string{"1"})
		assert.ErrorIs(t, err, entities.ErrInsufficientArguments)
	})

	t.Run("dangling percent", func(t *testing.T) {
		t.Parallel()
		_, err := FormatLocator("//tr[1]%", nil)
		assert.ErrorIs(t, err, entities.ErrInsufficientArguments)
	})
}

func TestJoinLocators(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "//table/following-sibling::td", JoinLocators("//table", "/following-sibling::td"))
	assert.Equal(t, "//div", JoinLocators("", "//div"))
}
