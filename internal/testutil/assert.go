// Package testutil provides assertion helpers shared by the retroboard tests.
package testutil

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t testing.TB, got, want any, msgAndArgs ...any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		fail(t, fmt.Sprintf("mismatch (-want +got):\n%s", diff), msgAndArgs...)
	}
}

// AssertSameSet compares got and want ignoring order and reports the
// elements missing from either side. Duplicates in got are reported too.
func AssertSameSet[T comparable](t testing.TB, got, want []T, msgAndArgs ...any) {
	t.Helper()
	less := func(a, b T) bool { return fmt.Sprint(a) < fmt.Sprint(b) }
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less), cmpopts.EquateEmpty()); diff != "" {
		fail(t, fmt.Sprintf("set mismatch (-want +got):\n%s", diff), msgAndArgs...)
	}
	seen := make(map[T]bool, len(got))
	for _, x := range got {
		if seen[x] {
			fail(t, fmt.Sprintf("duplicate element %v", x), msgAndArgs...)
		}
		seen[x] = true
	}
}

// AssertSubset fails if some element of sub is missing from super.
func AssertSubset[T comparable](t testing.TB, sub, super []T, msgAndArgs ...any) {
	t.Helper()
	var missing []string
	for _, x := range sub {
		if !slices.Contains(super, x) {
			missing = append(missing, fmt.Sprint(x))
		}
	}
	if len(missing) > 0 {
		fail(t, fmt.Sprintf("not in superset: %s", strings.Join(missing, " ")), msgAndArgs...)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		fail(t, fmt.Sprintf("unexpected error: %v", err), msgAndArgs...)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		fail(t, fmt.Sprintf("error %v is not %v", err, target), msgAndArgs...)
	}
}

// AssertPanics fails if f returns without panicking.
func AssertPanics(t testing.TB, f func(), msgAndArgs ...any) {
	t.Helper()
	defer func() {
		if recover() == nil {
			fail(t, "expected panic", msgAndArgs...)
		}
	}()
	f()
}

// AssertTrue fails if condition is false.
func AssertTrue(t testing.TB, condition bool, msgAndArgs ...any) {
	t.Helper()
	if !condition {
		fail(t, "expected true but got false", msgAndArgs...)
	}
}

func fail(t testing.TB, what string, msgAndArgs ...any) {
	t.Helper()
	if msg := formatMessage(msgAndArgs...); msg != "" {
		t.Errorf("%s: %s", msg, what)
		return
	}
	t.Error(what)
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		if len(msgAndArgs) == 1 {
			return s
		}
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs[0])
}
