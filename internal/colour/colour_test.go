package colour

import (
	"image/color"
	"math"
	"testing"
)

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255}, want: "#FF0000"},
		{name: "green", rgb: RGB{G: 255}, want: "#00FF00"},
		{name: "blue", rgb: RGB{B: 255}, want: "#0000FF"},
		{name: "black", rgb: RGB{}, want: "#000000"},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: "#FFFFFF"},
		{name: "mixed", rgb: RGB{R: 26, G: 43, B: 60}, want: "#1A2B3C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRGBCSS(t *testing.T) {
	rgb := RGB{R: 12, G: 34, B: 56}
	want := "rgb(12, 34, 56)"
	if got := rgb.CSS(); got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
	if got := rgb.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseHexRoundTrip(t *testing.T) {
	hexes := []string{"#000000", "#FFFFFF", "#1A2B3C", "#0A0B0C", "#FE0120"}
	for _, h := range hexes {
		t.Run(h, func(t *testing.T) {
			rgb, err := ParseHex(h)
			if err != nil {
				t.Fatalf("ParseHex(%q) returned error: %v", h, err)
			}
			if got := rgb.Hex(); got != h {
				t.Errorf("round trip: Hex(ParseHex(%q)) = %q", h, got)
			}
		})
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	inputs := []string{"", "#", "123456", "#12345", "#1234567", "#GGGGGG", "rgb(1,2,3)"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseHex(in); err == nil {
				t.Errorf("ParseHex(%q) expected error, got nil", in)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b RGB
		want float64
	}{
		{name: "identical", a: RGB{R: 10, G: 20, B: 30}, b: RGB{R: 10, G: 20, B: 30}, want: 0},
		{name: "black to white", a: RGB{}, b: RGB{R: 255, G: 255, B: 255}, want: math.Sqrt(3 * 255 * 255)},
		{name: "single channel", a: RGB{R: 3}, b: RGB{R: 7}, want: 4},
		{name: "pythagorean", a: RGB{R: 3, G: 4}, b: RGB{}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			// Distance is symmetric.
			if rev := Distance(tt.b, tt.a); rev != got {
				t.Errorf("Distance not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestToRGB(t *testing.T) {
	got := ToRGB(color.RGBA{R: 200, G: 100, B: 50, A: 255})
	want := RGB{R: 200, G: 100, B: 50}
	if got != want {
		t.Errorf("ToRGB() = %+v, want %+v", got, want)
	}
}

func TestColorRoundTrip(t *testing.T) {
	rgb := RGB{R: 1, G: 128, B: 254}
	if got := ToRGB(rgb.Color()); got != rgb {
		t.Errorf("ToRGB(rgb.Color()) = %+v, want %+v", got, rgb)
	}
}
