package tag

import (
	"errors"
	"slices"
	"testing"
)

type color string

func (c color) DisplayName() string { return string(c) }

const (
	red   color = "Red"
	green color = "Green"
	blue  color = "Blue"
)

var colors = Domain[color]{Name: "color", Values: []color{red, green, blue}}

func TestWrapString(t *testing.T) {
	g := Wrap(green)
	if got := g.String(); got != "Green" {
		t.Errorf("String() = %q, want %q", got, "Green")
	}
	v, ok := g.Value()
	if !ok || v != green {
		t.Errorf("Value() = %q, %v; want %q, true", v, ok, green)
	}
}

func TestZeroValueUnset(t *testing.T) {
	var g Generic[color]
	if g.IsSet() {
		t.Error("zero Generic should be unset")
	}
	if got := g.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestCopy(t *testing.T) {
	src := Wrap(blue)
	dst, ok := Copy(&src)
	if !ok {
		t.Fatal("copy of set tag should succeed")
	}
	if !dst.Equal(src) {
		t.Errorf("copy = %v, want %v", dst, src)
	}

	if _, ok := Copy[color](nil); ok {
		t.Error("copy of nil should be rejected")
	}

	var unset Generic[color]
	got, ok := Copy(&unset)
	if ok {
		t.Error("copy of unset tag should be rejected")
	}
	if got.IsSet() {
		t.Error("rejected copy should be unset")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Generic[color]
		want bool
	}{
		{Wrap(red), Wrap(red), true},
		{Wrap(red), Wrap(blue), false},
		{Generic[color]{}, Generic[color]{}, true},
		{Wrap(red), Generic[color]{}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareOrdersByDisplayName(t *testing.T) {
	tags := []Generic[color]{Wrap(red), Wrap(green), {}, Wrap(blue)}
	slices.SortFunc(tags, Generic[color].Compare)

	want := []string{"", "Blue", "Green", "Red"}
	for i, g := range tags {
		if g.String() != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, g.String(), want[i])
		}
	}
}

func TestFromDisplayNameRoundTrip(t *testing.T) {
	for _, v := range colors.Values {
		got, err := FromDisplayName(colors, Wrap(v).String())
		if err != nil {
			t.Fatalf("FromDisplayName(%q): %v", v, err)
		}
		if !got.Equal(Wrap(v)) {
			t.Errorf("FromDisplayName(%q) = %v, want %v", v, got, v)
		}
	}
}

func TestFromDisplayNameCaseInsensitive(t *testing.T) {
	got, err := FromDisplayName(colors, "gREEN")
	if err != nil {
		t.Fatalf("FromDisplayName: %v", err)
	}
	if !got.Equal(Wrap(green)) {
		t.Errorf("got %v, want Green", got)
	}
}

func TestFromDisplayNameUnknown(t *testing.T) {
	for _, name := range []string{"Purple", "", " red"} {
		got, err := FromDisplayName(colors, name)
		var unknown *UnknownTagError
		if !errors.As(err, &unknown) {
			t.Fatalf("FromDisplayName(%q) error = %v, want *UnknownTagError", name, err)
		}
		if unknown.Domain != "color" || unknown.Name != name {
			t.Errorf("error = %+v", unknown)
		}
		if got.IsSet() {
			t.Errorf("FromDisplayName(%q) returned a set tag", name)
		}
	}
}

func TestDomainContains(t *testing.T) {
	for _, c := range []color{red, green, blue} {
		if !colors.Contains(c) {
			t.Errorf("Contains(%q) = false", c)
		}
	}
	if colors.Contains(color("Purple")) {
		t.Error("Contains(Purple) = true, want false")
	}
}

func TestDomainNames(t *testing.T) {
	got := colors.Names()
	want := []string{"Red", "Green", "Blue"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
