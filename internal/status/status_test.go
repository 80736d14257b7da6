package status

import (
	"reflect"
	"testing"
)

func TestPushWPMKeepsLastTen(t *testing.T) {
	var s State
	for i := 1; i <= 15; i++ {
		s = s.PushWPM(uint8(i))
	}

	want := [WPMWindow]uint8{6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	if s.WPM != want {
		t.Fatalf("WPM = %v, want %v", s.WPM, want)
	}
	if got := s.LatestWPM(); got != 15 {
		t.Fatalf("LatestWPM() = %d, want 15", got)
	}
}

func TestPushWPMPartialWindow(t *testing.T) {
	var s State
	s = s.PushWPM(40).PushWPM(55)

	want := [WPMWindow]uint8{0, 0, 0, 0, 0, 0, 0, 0, 40, 55}
	if s.WPM != want {
		t.Fatalf("WPM = %v, want %v", s.WPM, want)
	}
}

func TestPushWPMDoesNotMutateReceiver(t *testing.T) {
	var s State
	_ = s.PushWPM(99)
	if s.WPM != [WPMWindow]uint8{} {
		t.Fatalf("receiver WPM = %v, want zeroes", s.WPM)
	}
}

func TestClampBattery(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  uint8
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"mid", 57, 57},
		{"full", 100, 100},
		{"over", 180, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (State{}).WithBattery(tt.level).Battery; got != tt.want {
				t.Fatalf("WithBattery(%d).Battery = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

// Each mutation must only touch the fields of its own category.
func TestMutationsStayInCategory(t *testing.T) {
	base := State{
		Battery:          42,
		Charging:         false,
		Endpoint:         EndpointBLE,
		ActiveProfile:    2,
		ProfileConnected: true,
		ProfileBonded:    true,
		LayerIndex:       3,
		LayerLabel:       "NAV",
		WPM:              [WPMWindow]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}

	tests := []struct {
		name   string
		apply  func(State) State
		fields []string
	}{
		{"battery", func(s State) State { return s.WithBattery(90) }, []string{"Battery"}},
		{"usb power", func(s State) State { return s.WithUSBPower(true) }, []string{"Charging"}},
		{"endpoint", func(s State) State { return s.WithEndpoint(EndpointUSB) }, []string{"Endpoint"}},
		{"profile", func(s State) State {
			return s.WithProfile(Profile{Index: 4, Connected: false, Bonded: false})
		}, []string{"ActiveProfile", "ProfileConnected", "ProfileBonded"}},
		{"layer", func(s State) State { return s.WithLayer(1, "") }, []string{"LayerIndex", "LayerLabel"}},
		{"wpm", func(s State) State { return s.PushWPM(77) }, []string{"WPM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := tt.apply(base)
			changed := diffFields(base, after)
			if !reflect.DeepEqual(changed, tt.fields) {
				t.Fatalf("changed fields = %v, want %v", changed, tt.fields)
			}
		})
	}
}

func diffFields(a, b State) []string {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	var out []string
	for i := 0; i < va.NumField(); i++ {
		if !reflect.DeepEqual(va.Field(i).Interface(), vb.Field(i).Interface()) {
			out = append(out, va.Type().Field(i).Name)
		}
	}
	return out
}

func TestParseEndpoint(t *testing.T) {
	for _, e := range []Endpoint{EndpointNone, EndpointUSB, EndpointBLE} {
		if got := ParseEndpoint(e.String()); got != e {
			t.Fatalf("ParseEndpoint(%q) = %v, want %v", e.String(), got, e)
		}
	}
	if got := ParseEndpoint("serial"); got != EndpointNone {
		t.Fatalf("ParseEndpoint(serial) = %v, want none", got)
	}
}
