// Package require contains the assertions used by the tests of this module. Every assertion
// stops the test on failure.
package require

import (
	"reflect"
	"testing"
)

func Equal(t *testing.T, x, y any) {
	t.Helper()
	if !reflect.DeepEqual(x, y) {
		t.Fatalf("`%v` != `%v`", x, y)
	}
}

func NotEqual(t *testing.T, x, y any) {
	t.Helper()
	if reflect.DeepEqual(x, y) {
		t.Fatalf("`%v` == `%v`", x, y)
	}
}

func True(t *testing.T, x bool) {
	t.Helper()
	if !x {
		t.Fatal("expected true, got false")
	}
}

func False(t *testing.T, x bool) {
	t.Helper()
	if x {
		t.Fatal("expected false, got true")
	}
}

func Nil(t *testing.T, x any) {
	t.Helper()
	if !isNil(x) {
		t.Fatalf("expected <nil>, got `%v`", x)
	}
}

func NotNil(t *testing.T, x any) {
	t.Helper()
	if isNil(x) {
		t.Fatalf("expected not <nil>, got `%v`", x)
	}
}

// Panics checks that f panics and returns the recovered value.
func Panics(t *testing.T, f func()) any {
	t.Helper()

	did, value := didPanic(f)
	if !did {
		t.Fatal("expected panic")
	}
	return value
}

// NotPanics checks that f returns normally.
func NotPanics(t *testing.T, f func()) {
	t.Helper()

	if did, value := didPanic(f); did {
		t.Fatalf("unexpected panic: `%v`", value)
	}
}

func PanicWithError(t *testing.T, errMsg string, f func()) {
	t.Helper()

	msg := Panics(t, f)
	if msg != errMsg {
		t.Fatalf("expected panic error `%s`, got `%v`", errMsg, msg)
	}
}

func isNil(i any) bool {
	if i == nil {
		return true
	}

	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface,
		reflect.UnsafePointer:
		return v.IsNil()
	}

	return false
}

func didPanic(f func()) (didPanic bool, message any) {
	didPanic = true

	defer func() {
		message = recover()
	}()

	// call the target function
	f()
	didPanic = false

	return
}
